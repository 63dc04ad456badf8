package objectmapper

import (
	"reflect"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

// typedHashMapper fixes the target type of a HashObjectReader, so FromHash always reads targetType.
type typedHashMapper struct {
	mapper     streamrecord.HashMapper[any, any]
	reader     streamrecord.HashObjectReader[any, any]
	targetType reflect.Type
}

func (m typedHashMapper) ToHash(object any) (streamrecord.Fields[any, any], error) {
	return m.mapper.ToHash(object)
}

func (m typedHashMapper) FromHash(hash streamrecord.Fields[any, any]) (any, error) {
	return m.reader.FromHashAs(m.targetType, hash)
}
