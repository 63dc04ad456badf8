package hashmapper

import (
	"errors"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

// JSONHashMapper maps objects to field mappings through their JSON form.
//
// Every member of the top-level JSON object becomes one field, in the order the JSON encoder writes them,
// i.e. struct declaration order. Field values are the JSON encoded member values. A value that does not encode
// to a JSON object is written as one PayloadField. A hash consisting of just a PayloadField is read back as that
// bare value unless the target is a struct or a map, which read it as a regular member named PayloadField.
//
// Keys and values read by FromHash and FromHashAs may be string or []byte.
type JSONHashMapper struct {
	api jsoniter.API
}

// JSONHashMapperOption defines a functional option for configuring a JSONHashMapper.
type JSONHashMapperOption func(*JSONHashMapper) error

// WithJSONAPI replaces the json-iterator configuration, default: jsoniter.ConfigCompatibleWithStandardLibrary.
func WithJSONAPI(api jsoniter.API) JSONHashMapperOption {
	return func(m *JSONHashMapper) error {
		if api == nil {
			return errors.Join(streamrecord.ErrPrecondition, errors.New("json api must not be nil"))
		}

		m.api = api

		return nil
	}
}

// NewJSONHashMapper creates a JSONHashMapper.
func NewJSONHashMapper(options ...JSONHashMapperOption) (*JSONHashMapper, error) {
	m := &JSONHashMapper{
		api: jsoniter.ConfigCompatibleWithStandardLibrary,
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ToHash encodes object to JSON and splits the top-level object into fields.
func (m *JSONHashMapper) ToHash(object any) (streamrecord.Fields[any, any], error) {
	data, err := m.api.Marshal(object)
	if err != nil {
		return streamrecord.Fields[any, any]{}, errors.Join(streamrecord.ErrFieldConversion, err)
	}

	iter := m.api.BorrowIterator(data)
	defer m.api.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return streamrecord.FieldsFrom(streamrecord.Field[any, any]{Key: PayloadField, Value: string(data)}), nil
	}

	fields := streamrecord.NewFields[any, any](initialFieldCapacity)

	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		fields.Put(key, string(it.SkipAndReturnBytes()))
		return true
	})

	if iter.Error != nil {
		return streamrecord.Fields[any, any]{}, errors.Join(streamrecord.ErrFieldConversion, iter.Error)
	}

	return fields, nil
}

// FromHash reads hash into a map[string]any.
func (m *JSONHashMapper) FromHash(hash streamrecord.Fields[any, any]) (any, error) {
	return m.FromHashAs(reflect.TypeFor[map[string]any](), hash)
}

// FromHashAs joins the fields of hash into one JSON object and decodes it into a value of targetType.
func (m *JSONHashMapper) FromHashAs(targetType reflect.Type, hash streamrecord.Fields[any, any]) (any, error) {
	if targetType == nil {
		return nil, errors.Join(streamrecord.ErrPrecondition, errors.New("target type must not be nil"))
	}

	data, err := m.joinFields(targetType, hash)
	if err != nil {
		return nil, err
	}

	target := reflect.New(targetType)
	if err = m.api.Unmarshal(data, target.Interface()); err != nil {
		return nil, errors.Join(streamrecord.ErrFieldConversion, fmt.Errorf("decoding fields into %s", targetType), err)
	}

	return target.Elem().Interface(), nil
}

func (m *JSONHashMapper) joinFields(targetType reflect.Type, hash streamrecord.Fields[any, any]) ([]byte, error) {
	if hash.Len() == 1 && !isObjectType(targetType) {
		if payload, ok := hash.Get(PayloadField); ok {
			return jsonText(PayloadField, payload)
		}
	}

	stream := m.api.BorrowStream(nil)
	defer m.api.ReturnStream(stream)

	stream.WriteObjectStart()

	first := true
	for key, value := range hash.All() {
		name, err := jsonText("key", key)
		if err != nil {
			return nil, err
		}

		raw, err := jsonText(string(name), value)
		if err != nil {
			return nil, err
		}

		if !first {
			stream.WriteMore()
		}

		first = false

		stream.WriteObjectField(string(name))
		stream.WriteRaw(string(raw))
	}

	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, errors.Join(streamrecord.ErrFieldConversion, stream.Error)
	}

	data := make([]byte, len(stream.Buffer()))
	copy(data, stream.Buffer())

	return data, nil
}

// isObjectType returns true for types that are encoded as a JSON object.
func isObjectType(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}

func jsonText(name string, value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, errors.Join(
			streamrecord.ErrFieldConversion,
			fmt.Errorf("field %q: expected string or []byte, got %T", name, value),
		)
	}
}
