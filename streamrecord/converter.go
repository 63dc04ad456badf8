package streamrecord

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// ToMapRecord converts the given Record into a MapRecord.
//
//   - An ObjectRecord whose value is already a field mapping is wrapped directly, the provider is not asked.
//     Field mappings are Fields[HK, HV], a non-nil *Fields[HK, HV] and Go maps whose key and element types are
//     assignable to HK and HV. Go maps are unordered, their entries are ordered by the textual form of the key.
//   - Any other ObjectRecord is mapped with the HashMapper the provider resolves for the runtime type of its value.
//   - A MapRecord[HK, HV] is returned unchanged.
//
// Every other Record fails with ErrUnsupportedRecordVariant. This includes a MapRecord with different field
// types: it carries no object for the provider to resolve a HashMapper for, and its fields can not be converted
// to HK and HV without one, so it is rejected instead of being mapped like an ObjectRecord.
func ToMapRecord[HK any, HV any](provider HashMapperProvider[HK, HV], source Record) (MapRecord[HK, HV], error) {
	var empty MapRecord[HK, HV]

	switch record := source.(type) {
	case MapRecord[HK, HV]:
		return record, nil

	case objectValueRecord:
		value := record.objectValue()

		if fields, ok := fieldsOf[HK, HV](value); ok {
			return BuildMapRecord(record.Stream(), record.ID(), fields), nil
		}

		if value == nil {
			return empty, errors.Join(ErrUnsupportedType, errors.New("object record value must not be nil"))
		}

		mapper, err := resolveHashMapper(provider, reflect.TypeOf(value))
		if err != nil {
			return empty, err
		}

		fields, err := mapper.ToHash(value)
		if err != nil {
			return empty, err
		}

		return BuildMapRecord(record.Stream(), record.ID(), fields), nil

	default:
		return empty, errors.Join(ErrUnsupportedRecordVariant, fmt.Errorf("can not convert %T to a map record", source))
	}
}

// ToObjectRecord converts the given MapRecord into an ObjectRecord of type V,
// using the HashMapper the provider resolves for V.
func ToObjectRecord[V any, HK any, HV any](
	source MapRecord[HK, HV],
	provider HashMapperProvider[HK, HV],
) (ObjectRecord[V], error) {

	mapper, err := resolveHashMapper(provider, reflect.TypeFor[V]())
	if err != nil {
		return ObjectRecord[V]{}, err
	}

	return toObjectRecord[V](source, mapper)
}

// ToObjectRecords maps a slice of MapRecord(s) to a slice of ObjectRecord(s).
//
// A nil input results in nil and an empty input in an empty result, both without asking the provider.
// Otherwise, the HashMapper is resolved exactly once and used for all records.
// The conversion is all or nothing: if one record fails, no records are returned.
func ToObjectRecords[V any, HK any, HV any](
	records []MapRecord[HK, HV],
	provider HashMapperProvider[HK, HV],
) ([]ObjectRecord[V], error) {

	if records == nil {
		return nil, nil
	}

	if len(records) == 0 {
		return []ObjectRecord[V]{}, nil
	}

	if len(records) == 1 {
		record, err := ToObjectRecord[V](records[0], provider)
		if err != nil {
			return nil, err
		}

		return []ObjectRecord[V]{record}, nil
	}

	mapper, err := resolveHashMapper(provider, reflect.TypeFor[V]())
	if err != nil {
		return nil, err
	}

	transformed := make([]ObjectRecord[V], 0, len(records))

	for _, record := range records {
		objectRecord, err := toObjectRecord[V](record, mapper)
		if err != nil {
			return nil, err
		}

		transformed = append(transformed, objectRecord)
	}

	return transformed, nil
}

func toObjectRecord[V any, HK any, HV any](source MapRecord[HK, HV], mapper HashMapper[HK, HV]) (ObjectRecord[V], error) {
	object, err := mapper.FromHash(source.Fields())
	if err != nil {
		return ObjectRecord[V]{}, err
	}

	value, err := objectAs[V](object)
	if err != nil {
		return ObjectRecord[V]{}, err
	}

	return BuildObjectRecord(source.Stream(), source.ID(), value), nil
}

func resolveHashMapper[HK any, HV any](
	provider HashMapperProvider[HK, HV],
	targetType reflect.Type,
) (HashMapper[HK, HV], error) {

	if provider == nil {
		return nil, ErrNilProvider
	}

	mapper, err := provider.HashMapperFor(targetType)
	if err != nil {
		return nil, err
	}

	if mapper == nil {
		return nil, errors.Join(ErrUnsupportedType, fmt.Errorf("no hash mapper for %s", targetType))
	}

	return mapper, nil
}

// objectAs narrows what a HashMapper read to V. A *V is dereferenced, nil reads as the zero value.
func objectAs[V any](object any) (V, error) {
	var zero V

	if object == nil {
		return zero, nil
	}

	if value, ok := object.(V); ok {
		return value, nil
	}

	if ptr, ok := object.(*V); ok && ptr != nil {
		return *ptr, nil
	}

	return zero, errors.Join(
		ErrFieldConversion,
		fmt.Errorf("hash mapper returned %T, expected %s", object, reflect.TypeFor[V]()),
	)
}

func fieldsOf[HK any, HV any](value any) (Fields[HK, HV], bool) {
	switch v := value.(type) {
	case Fields[HK, HV]:
		return v, true

	case *Fields[HK, HV]:
		if v != nil {
			return *v, true
		}

		return Fields[HK, HV]{}, false
	}

	if value == nil {
		return Fields[HK, HV]{}, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return Fields[HK, HV]{}, false
	}

	if !rv.Type().Key().AssignableTo(reflect.TypeFor[HK]()) || !rv.Type().Elem().AssignableTo(reflect.TypeFor[HV]()) {
		return Fields[HK, HV]{}, false
	}

	type sortableEntry struct {
		sortKey string
		entry   Field[HK, HV]
	}

	sortable := make([]sortableEntry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, _ := iter.Key().Interface().(HK)
		val, _ := iter.Value().Interface().(HV)

		sortable = append(sortable, sortableEntry{
			sortKey: fmt.Sprint(iter.Key().Interface()),
			entry:   Field[HK, HV]{Key: key, Value: val},
		})
	}

	slices.SortFunc(sortable, func(a, b sortableEntry) int {
		return strings.Compare(a.sortKey, b.sortKey)
	})

	fields := NewFields[HK, HV](len(sortable))
	for _, s := range sortable {
		fields.entries = append(fields.entries, s.entry)
	}

	return fields, true
}
