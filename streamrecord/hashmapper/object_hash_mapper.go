package hashmapper

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
)

const (
	// TypeHintField is the field holding the type alias of the mapped object.
	TypeHintField = "_class"

	// PayloadField is the field holding a simple value, e.g. a string, that is mapped on its own.
	PayloadField = "payload"

	structTag        = "hash"
	pathSeparator    = "."
	indexOpen        = "["
	indexClose       = "]"
	tagValueSkip     = "-"
	tagOptionPrefix  = ","
	errMsgNoTypeHint = "no type hint found"

	initialFieldCapacity = 8
	defaultMaxElements   = 10_000
)

var (
	// ErrEmptyTypeAlias is returned when a type alias is registered with an empty name.
	ErrEmptyTypeAlias = errors.Join(streamrecord.ErrPrecondition, errors.New("type alias must not be empty"))

	// ErrDuplicateTypeAlias is returned when one alias is registered for two different types.
	ErrDuplicateTypeAlias = errors.Join(streamrecord.ErrPrecondition, errors.New("type alias is already registered"))
)

// ObjectHashMapper maps objects to binary field mappings and back.
//
// Structs are flattened: nested structs are written as "address.city", slice and array elements as
// "lines.[0]", map entries as "attributes.[color]". The first field is a type hint (TypeHintField) holding
// the registered alias of the type, or its package qualified name if no alias is registered.
// Simple values, as defined by the conversion service, are written as one PayloadField.
//
// Field names are taken from the `hash:"name"` struct tag, falling back to the Go field name.
// Fields tagged `hash:"-"` and unexported fields are skipped.
//
// An ObjectHashMapper is immutable and safe for concurrent use.
type ObjectHashMapper struct {
	conversions   *conversion.Service
	typesByAlias  map[string]reflect.Type
	aliasesByType map[reflect.Type]string
	maxElements   int
}

// ObjectHashMapperOption defines a functional option for configuring an ObjectHashMapper.
type ObjectHashMapperOption func(*ObjectHashMapper) error

// WithTypeAlias registers alias as type hint for the type of sample.
// FromHash can only read objects whose type hint is registered.
func WithTypeAlias(alias string, sample any) ObjectHashMapperOption {
	return func(m *ObjectHashMapper) error {
		if alias == "" {
			return ErrEmptyTypeAlias
		}

		t := reflect.TypeOf(sample)
		if t == nil {
			return errors.Join(streamrecord.ErrPrecondition, fmt.Errorf("sample for type alias %q must not be nil", alias))
		}

		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		if registered, ok := m.typesByAlias[alias]; ok && registered != t {
			return errors.Join(ErrDuplicateTypeAlias, fmt.Errorf("%q: %s and %s", alias, registered, t))
		}

		m.typesByAlias[alias] = t
		m.aliasesByType[t] = alias

		return nil
	}
}

// WithMaxElements limits the length of slices read by FromHash and FromHashAs, default: 10000.
// A field mapping with a higher element index fails with streamrecord.ErrFieldConversion.
func WithMaxElements(maxElements int) ObjectHashMapperOption {
	return func(m *ObjectHashMapper) error {
		if maxElements <= 0 {
			return errors.Join(streamrecord.ErrPrecondition, errors.New("max elements must be positive"))
		}

		m.maxElements = maxElements

		return nil
	}
}

// NewObjectHashMapper creates an ObjectHashMapper using conversions for all simple values.
func NewObjectHashMapper(conversions *conversion.Service, options ...ObjectHashMapperOption) (*ObjectHashMapper, error) {
	if conversions == nil {
		return nil, streamrecord.ErrNilConversionService
	}

	m := &ObjectHashMapper{
		conversions:   conversions,
		typesByAlias:  make(map[string]reflect.Type),
		aliasesByType: make(map[reflect.Type]string),
		maxElements:   defaultMaxElements,
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ToHash flattens object into a binary field mapping. A nil object results in an empty mapping.
func (m *ObjectHashMapper) ToHash(object any) (streamrecord.Fields[[]byte, []byte], error) {
	if object == nil {
		return streamrecord.NewFields[[]byte, []byte](0), nil
	}

	rv := reflect.ValueOf(object)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return streamrecord.NewFields[[]byte, []byte](0), nil
		}

		rv = rv.Elem()
	}

	w := fieldWriter{
		conversions: m.conversions,
		fields:      streamrecord.NewFields[[]byte, []byte](initialFieldCapacity),
	}
	w.fields.Put([]byte(TypeHintField), []byte(m.typeHintFor(rv.Type())))

	if m.conversions.IsSimpleType(rv.Type()) {
		if err := w.writeSimple(PayloadField, rv); err != nil {
			return streamrecord.Fields[[]byte, []byte]{}, err
		}

		return w.fields, nil
	}

	if rv.Kind() != reflect.Struct {
		return streamrecord.Fields[[]byte, []byte]{}, errors.Join(
			streamrecord.ErrUnsupportedType,
			fmt.Errorf("can only map structs and simple types, got %s", rv.Type()),
		)
	}

	if err := w.writeStruct("", rv); err != nil {
		return streamrecord.Fields[[]byte, []byte]{}, err
	}

	return w.fields, nil
}

// FromHash reads hash into an object of the type its type hint names.
// The type hint must be registered with WithTypeAlias.
func (m *ObjectHashMapper) FromHash(hash streamrecord.Fields[[]byte, []byte]) (any, error) {
	hint, ok := hash.Get([]byte(TypeHintField))
	if !ok {
		return nil, errors.Join(streamrecord.ErrUnsupportedType, errors.New(errMsgNoTypeHint))
	}

	t, ok := m.typesByAlias[string(hint)]
	if !ok {
		return nil, errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("type hint %q is not registered", hint))
	}

	return m.FromHashAs(t, hash)
}

// FromHashAs reads hash into an object of targetType.
// If targetType is an interface, the registered type named by the type hint is read and must implement it.
func (m *ObjectHashMapper) FromHashAs(targetType reflect.Type, hash streamrecord.Fields[[]byte, []byte]) (any, error) {
	if targetType == nil {
		return nil, errors.Join(streamrecord.ErrPrecondition, errors.New("target type must not be nil"))
	}

	concreteType, err := m.concreteTypeFor(targetType, hash)
	if err != nil {
		return nil, err
	}

	r := fieldReader{
		conversions: m.conversions,
		values:      make(map[string][]byte, hash.Len()),
		maxElements: m.maxElements,
	}

	for key, value := range hash.All() {
		r.values[string(key)] = value
	}

	target := reflect.New(concreteType).Elem()

	if m.conversions.IsSimpleType(concreteType) {
		err = r.readSimple(PayloadField, target)
	} else {
		err = r.read("", target)
	}

	if err != nil {
		return nil, err
	}

	if concreteType != targetType {
		converted := reflect.New(targetType).Elem()
		converted.Set(target)

		return converted.Interface(), nil
	}

	return target.Interface(), nil
}

func (m *ObjectHashMapper) concreteTypeFor(targetType reflect.Type, hash streamrecord.Fields[[]byte, []byte]) (reflect.Type, error) {
	if targetType.Kind() != reflect.Interface {
		return targetType, nil
	}

	hint, ok := hash.Get([]byte(TypeHintField))
	if !ok {
		return nil, errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("%s for interface %s", errMsgNoTypeHint, targetType))
	}

	t, ok := m.typesByAlias[string(hint)]
	if !ok || !t.Implements(targetType) {
		return nil, errors.Join(
			streamrecord.ErrUnsupportedType,
			fmt.Errorf("type hint %q does not name a registered implementation of %s", hint, targetType),
		)
	}

	return t, nil
}

func (m *ObjectHashMapper) typeHintFor(t reflect.Type) string {
	if alias, ok := m.aliasesByType[t]; ok {
		return alias
	}

	if t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + pathSeparator + t.Name()
}

/***** writing *****/

type fieldWriter struct {
	conversions *conversion.Service
	fields      streamrecord.Fields[[]byte, []byte]
}

func (w *fieldWriter) write(path string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}

		return w.write(path, rv.Elem())
	default:
	}

	if w.conversions.IsSimpleType(rv.Type()) {
		return w.writeSimple(path, rv)
	}

	switch rv.Kind() {
	case reflect.Struct:
		return w.writeStruct(path+pathSeparator, rv)

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if err := w.write(path+pathSeparator+indexOpen+strconv.Itoa(i)+indexClose, rv.Index(i)); err != nil {
				return err
			}
		}

		return nil

	case reflect.Map:
		return w.writeMap(path, rv)

	default:
		return errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("field %q has unsupported type %s", path, rv.Type()))
	}
}

func (w *fieldWriter) writeStruct(prefix string, rv reflect.Value) error {
	for _, field := range fieldsOfStruct(rv.Type()) {
		if err := w.write(prefix+field.name, rv.Field(field.index)); err != nil {
			return err
		}
	}

	return nil
}

func (w *fieldWriter) writeMap(path string, rv reflect.Value) error {
	type mapEntry struct {
		key   string
		value reflect.Value
	}

	entries := make([]mapEntry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, err := w.conversions.Convert(iter.Key().Interface(), reflect.TypeFor[string]())
		if err != nil {
			return errors.Join(fmt.Errorf("map key of field %q", path), err)
		}

		entries = append(entries, mapEntry{key: key.(string), value: iter.Value()})
	}

	slices.SortFunc(entries, func(a, b mapEntry) int {
		return strings.Compare(a.key, b.key)
	})

	for _, entry := range entries {
		if err := w.write(path+pathSeparator+indexOpen+entry.key+indexClose, entry.value); err != nil {
			return err
		}
	}

	return nil
}

func (w *fieldWriter) writeSimple(path string, rv reflect.Value) error {
	value, err := w.conversions.ToBytes(rv.Interface())
	if err != nil {
		return errors.Join(fmt.Errorf("writing field %q", path), err)
	}

	w.fields.Put([]byte(path), value)

	return nil
}

/***** reading *****/

type fieldReader struct {
	conversions *conversion.Service
	values      map[string][]byte
	maxElements int
}

func (r *fieldReader) read(path string, target reflect.Value) error {
	if target.Kind() == reflect.Pointer {
		if !r.hasPath(path) {
			return nil
		}

		target.Set(reflect.New(target.Type().Elem()))

		return r.read(path, target.Elem())
	}

	if path != "" && r.conversions.IsSimpleType(target.Type()) {
		return r.readSimple(path, target)
	}

	prefix := path
	if path != "" {
		prefix += pathSeparator
	}

	switch target.Kind() {
	case reflect.Struct:
		for _, field := range fieldsOfStruct(target.Type()) {
			if err := r.read(prefix+field.name, target.Field(field.index)); err != nil {
				return err
			}
		}

		return nil

	case reflect.Slice:
		length, err := r.elementCount(path)
		if err != nil {
			return err
		}

		if length == 0 {
			return nil
		}

		target.Set(reflect.MakeSlice(target.Type(), length, length))

		return r.readElements(path, target, length)

	case reflect.Array:
		length, err := r.elementCount(path)
		if err != nil {
			return err
		}

		return r.readElements(path, target, min(target.Len(), length))

	case reflect.Map:
		return r.readMap(path, target)

	case reflect.Interface:
		raw, ok := r.values[path]
		if ok && target.NumMethod() == 0 {
			target.Set(reflect.ValueOf(string(raw)))
			return nil
		}

		if !r.hasPath(path) {
			return nil
		}

		return errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("field %q has interface type %s", path, target.Type()))

	default:
		return errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("field %q has unsupported type %s", path, target.Type()))
	}
}

func (r *fieldReader) readElements(path string, target reflect.Value, length int) error {
	for i := range length {
		if err := r.read(path+pathSeparator+indexOpen+strconv.Itoa(i)+indexClose, target.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

func (r *fieldReader) readMap(path string, target reflect.Value) error {
	keys := r.indexKeys(path)
	if len(keys) == 0 {
		return nil
	}

	if target.IsNil() {
		target.Set(reflect.MakeMapWithSize(target.Type(), len(keys)))
	}

	for _, key := range keys {
		mapKey, err := r.conversions.Convert(key, target.Type().Key())
		if err != nil {
			return errors.Join(fmt.Errorf("map key of field %q", path), err)
		}

		value := reflect.New(target.Type().Elem()).Elem()
		if err = r.read(path+pathSeparator+indexOpen+key+indexClose, value); err != nil {
			return err
		}

		target.SetMapIndex(reflect.ValueOf(mapKey), value)
	}

	return nil
}

func (r *fieldReader) readSimple(path string, target reflect.Value) error {
	raw, ok := r.values[path]
	if !ok {
		return nil
	}

	value, err := r.conversions.FromBytes(raw, target.Type())
	if err != nil {
		return errors.Join(fmt.Errorf("reading field %q", path), err)
	}

	if value != nil {
		target.Set(reflect.ValueOf(value))
	}

	return nil
}

func (r *fieldReader) hasPath(path string) bool {
	if path == "" {
		return len(r.values) > 0
	}

	if _, ok := r.values[path]; ok {
		return true
	}

	for key := range r.values {
		if strings.HasPrefix(key, path+pathSeparator) {
			return true
		}
	}

	return false
}

// indexKeys returns the distinct keys k of all fields path.[k] or path.[k].rest, sorted.
func (r *fieldReader) indexKeys(path string) []string {
	prefix := path + pathSeparator + indexOpen
	seen := make(map[string]struct{})

	for key := range r.values {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}

		index, _, ok := strings.Cut(rest, indexClose)
		if !ok {
			continue
		}

		seen[index] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// elementCount returns the length of the slice written at path, i.e. the highest index plus one.
func (r *fieldReader) elementCount(path string) (int, error) {
	count := 0

	for _, key := range r.indexKeys(path) {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			continue
		}

		if i >= r.maxElements {
			return 0, errors.Join(
				streamrecord.ErrFieldConversion,
				fmt.Errorf("field %q: element index %d exceeds the limit of %d elements", path, i, r.maxElements),
			)
		}

		count = max(count, i+1)
	}

	return count, nil
}

/***** struct fields *****/

type structField struct {
	name  string
	index int
}

func fieldsOfStruct(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name

		if tag, ok := f.Tag.Lookup(structTag); ok {
			tagName, _, _ := strings.Cut(tag, tagOptionPrefix)
			if tagName == tagValueSkip {
				continue
			}

			if tagName != "" {
				name = tagName
			}
		}

		fields = append(fields, structField{name: name, index: i})
	}

	return fields
}
