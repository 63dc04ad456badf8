// Package hashmapper provides HashMapper implementations for stream records.
//
//   - ObjectHashMapper: a streamrecord.BinaryHashMapper that flattens structs into []byte fields with a type hint,
//     using a conversion.Service for every simple value.
//   - JSONHashMapper: a generic streamrecord.HashMapper[any, any] that splits the JSON form of an object into fields.
//
// Both implement streamrecord.HashObjectReader, so they can read back into an explicitly requested type.
package hashmapper
