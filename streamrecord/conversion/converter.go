package conversion

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

// ConvertiblePair is a source type and a target type a Converter converts between.
type ConvertiblePair struct {
	SourceType reflect.Type
	TargetType reflect.Type
}

func (p ConvertiblePair) String() string {
	return fmt.Sprintf("%s -> %s", p.SourceType, p.TargetType)
}

// ConverterFunc converts a value of the source type of a ConvertiblePair to its target type.
type ConverterFunc func(source any) (any, error)

// Converter is a custom conversion for exactly one ConvertiblePair.
type Converter struct {
	pair    ConvertiblePair
	convert ConverterFunc
}

// ConverterOf builds a Converter from a typed conversion function.
func ConverterOf[S any, T any](fn func(source S) (T, error)) Converter {
	pair := ConvertiblePair{
		SourceType: reflect.TypeFor[S](),
		TargetType: reflect.TypeFor[T](),
	}

	return Converter{
		pair: pair,
		convert: func(source any) (any, error) {
			typed, ok := source.(S)
			if !ok {
				return nil, errors.Join(
					streamrecord.ErrFieldConversion,
					fmt.Errorf("converter %s got %T", pair, source),
				)
			}

			return fn(typed)
		},
	}
}

// Pair returns the source and target type of the Converter.
func (c Converter) Pair() ConvertiblePair {
	return c.pair
}
