// Package library contains the domain events of the example, book circulation in a public library,
// and shows how they are written to and read from stream records.
//
// Every event type is registered as type alias of the ObjectHashMapper, so a MapRecord carries its
// event type as type hint and can be read back as DomainEvent without knowing the concrete type upfront.
package library
