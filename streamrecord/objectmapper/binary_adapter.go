package objectmapper

import (
	"reflect"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
)

// BinaryAdapter makes a streamrecord.BinaryHashMapper usable where a generic HashMapper[any, any] is required.
//
// Written field mappings are the binary mapper's []byte keys and values, seen as any. Field mappings that are
// read get every key and value coerced to []byte first: []byte is passed through unchanged, everything else is
// converted with the conversion service. Entry order is preserved in both directions.
type BinaryAdapter struct {
	mapper      streamrecord.BinaryHashMapper
	conversions *conversion.Service
}

// NewBinaryAdapter creates a BinaryAdapter for mapper.
func NewBinaryAdapter(mapper streamrecord.BinaryHashMapper, conversions *conversion.Service) (*BinaryAdapter, error) {
	if mapper == nil {
		return nil, streamrecord.ErrNilHashMapper
	}

	if conversions == nil {
		return nil, streamrecord.ErrNilConversionService
	}

	return &BinaryAdapter{
		mapper:      mapper,
		conversions: conversions,
	}, nil
}

// ToHash delegates to the binary mapper. Keys and values of the result are []byte.
func (a *BinaryAdapter) ToHash(object any) (streamrecord.Fields[any, any], error) {
	hash, err := a.mapper.ToHash(object)
	if err != nil {
		return streamrecord.Fields[any, any]{}, err
	}

	view := streamrecord.NewFields[any, any](hash.Len())
	for key, value := range hash.All() {
		view.Append(key, value)
	}

	return view, nil
}

// FromHash coerces hash to []byte keys and values and delegates to the binary mapper.
func (a *BinaryAdapter) FromHash(hash streamrecord.Fields[any, any]) (any, error) {
	binary, err := a.toBinaryFields(hash)
	if err != nil {
		return nil, err
	}

	return a.mapper.FromHash(binary)
}

// FromHashAs coerces hash to []byte keys and values and delegates to the binary mapper's typed read.
func (a *BinaryAdapter) FromHashAs(targetType reflect.Type, hash streamrecord.Fields[any, any]) (any, error) {
	binary, err := a.toBinaryFields(hash)
	if err != nil {
		return nil, err
	}

	return a.mapper.FromHashAs(targetType, binary)
}

func (a *BinaryAdapter) toBinaryFields(hash streamrecord.Fields[any, any]) (streamrecord.Fields[[]byte, []byte], error) {
	target := streamrecord.NewFields[[]byte, []byte](hash.Len())

	for key, value := range hash.All() {
		binaryKey, err := a.toBytes(key)
		if err != nil {
			return streamrecord.Fields[[]byte, []byte]{}, err
		}

		binaryValue, err := a.toBytes(value)
		if err != nil {
			return streamrecord.Fields[[]byte, []byte]{}, err
		}

		target.Append(binaryKey, binaryValue)
	}

	return target, nil
}

// toBytes returns conversion service errors unchanged.
func (a *BinaryAdapter) toBytes(value any) ([]byte, error) {
	if b, ok := value.([]byte); ok {
		return b, nil
	}

	return a.conversions.ToBytes(value)
}
