// Package conversion provides the conversion service used to coerce field values to and from their
// wire representation, together with the registry of custom conversions and the simple type classification.
//
// A Service is built once, typically at process start, and is read-only afterwards.
// It is safe for concurrent use and is meant to be injected into every component that needs it:
//
//	conversions := conversion.NewCustomConversions(
//		conversion.ConverterOf(func(m Money) ([]byte, error) { return []byte(m.String()), nil }),
//		conversion.ConverterOf(func(b []byte) (Money, error) { return ParseMoney(string(b)) }),
//	)
//
//	service, err := conversion.NewService(conversions)
//
// Built-in conversions cover all bool, integer, float, complex and string kinds (named types included),
// []byte, time.Time, time.Duration, uuid.UUID and types implementing encoding.TextMarshaler / TextUnmarshaler.
package conversion
