package conversion

import (
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	bytesType          = reflect.TypeFor[[]byte]()
	stringType         = reflect.TypeFor[string]()
	timeType           = reflect.TypeFor[time.Time]()
	durationType       = reflect.TypeFor[time.Duration]()
	uuidType           = reflect.TypeFor[uuid.UUID]()
	builtinSimpleTypes = []reflect.Type{bytesType, timeType, durationType, uuidType}
)

var simpleKinds = map[reflect.Kind]struct{}{
	reflect.Bool:       {},
	reflect.Int:        {},
	reflect.Int8:       {},
	reflect.Int16:      {},
	reflect.Int32:      {},
	reflect.Int64:      {},
	reflect.Uint:       {},
	reflect.Uint8:      {},
	reflect.Uint16:     {},
	reflect.Uint32:     {},
	reflect.Uint64:     {},
	reflect.Float32:    {},
	reflect.Float64:    {},
	reflect.Complex64:  {},
	reflect.Complex128: {},
	reflect.String:     {},
}

// CustomConversions is the registry of custom Converter(s).
//
// It also defines which types are simple, i.e. atomic values that a hash mapper writes as a single field
// instead of decomposing them. Besides the built-in simple types, every source type of a converter that
// writes []byte or string is simple.
//
// CustomConversions is immutable.
type CustomConversions struct {
	converters  []Converter
	simpleTypes map[reflect.Type]struct{}
}

// NewCustomConversions creates the registry from the given converters.
// A later converter for the same ConvertiblePair replaces an earlier one.
func NewCustomConversions(converters ...Converter) CustomConversions {
	cc := CustomConversions{
		converters:  make([]Converter, 0, len(converters)),
		simpleTypes: make(map[reflect.Type]struct{}),
	}

	for _, converter := range converters {
		if converter.convert == nil {
			continue
		}

		cc.converters = append(cc.converters, converter)

		if converter.pair.TargetType == bytesType || converter.pair.TargetType == stringType {
			cc.simpleTypes[converter.pair.SourceType] = struct{}{}
		}
	}

	return cc
}

// Converters returns a copy of the registered converters.
func (cc CustomConversions) Converters() []Converter {
	converters := make([]Converter, len(cc.converters))
	copy(converters, cc.converters)

	return converters
}

// IsSimpleType returns true if t is written as one atomic value.
func (cc CustomConversions) IsSimpleType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if _, ok := cc.simpleTypes[t]; ok {
		return true
	}

	if slices.Contains(builtinSimpleTypes, t) {
		return true
	}

	_, ok := simpleKinds[t.Kind()]

	return ok
}

// registerConvertersIn copies the custom converters into the lookup table of a Service under construction.
func (cc CustomConversions) registerConvertersIn(target map[ConvertiblePair]ConverterFunc) {
	for _, converter := range cc.converters {
		target[converter.pair] = converter.convert
	}
}
