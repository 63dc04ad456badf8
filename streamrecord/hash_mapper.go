package streamrecord

import (
	"reflect"
)

// HashMapper converts an object to an ordered field mapping and back.
type HashMapper[HK any, HV any] interface {
	ToHash(object any) (Fields[HK, HV], error)
	FromHash(hash Fields[HK, HV]) (any, error)
}

// HashObjectReader is implemented by hash mappers that can read a field mapping into an explicitly requested type.
type HashObjectReader[HK any, HV any] interface {
	FromHashAs(targetType reflect.Type, hash Fields[HK, HV]) (any, error)
}

// BinaryHashMapper is a hash mapper constrained to []byte keys and values.
type BinaryHashMapper interface {
	HashMapper[[]byte, []byte]
	HashObjectReader[[]byte, []byte]
}

// HashMapperProvider resolves the HashMapper for a target type.
type HashMapperProvider[HK any, HV any] interface {
	HashMapperFor(targetType reflect.Type) (HashMapper[HK, HV], error)
}

// HashMapperProviderFunc adapts a function to the HashMapperProvider interface.
type HashMapperProviderFunc[HK any, HV any] func(targetType reflect.Type) (HashMapper[HK, HV], error)

// HashMapperFor calls f(targetType).
func (f HashMapperProviderFunc[HK, HV]) HashMapperFor(targetType reflect.Type) (HashMapper[HK, HV], error) {
	return f(targetType)
}
