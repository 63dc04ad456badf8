package streamrecord

import (
	"bytes"
	"iter"
	"reflect"
)

// Field is a single key/value pair of a Fields mapping.
type Field[HK any, HV any] struct {
	Key   HK
	Value HV
}

// Fields is an ordered field mapping, the wire level body of a stream record.
//
// Insertion order is significant and kept by every operation. Putting a key that is already present
// replaces its value without changing its position. Keys of type []byte are compared by content.
//
// The zero value is an empty mapping ready to use.
type Fields[HK any, HV any] struct {
	entries []Field[HK, HV]
}

// NewFields creates a Fields mapping with room for capacity entries.
func NewFields[HK any, HV any](capacity int) Fields[HK, HV] {
	return Fields[HK, HV]{entries: make([]Field[HK, HV], 0, capacity)}
}

// FieldsFrom creates a Fields mapping from the given entries, keeping their order.
func FieldsFrom[HK any, HV any](entries ...Field[HK, HV]) Fields[HK, HV] {
	f := NewFields[HK, HV](len(entries))
	for _, entry := range entries {
		f.Put(entry.Key, entry.Value)
	}

	return f
}

// Put adds or replaces the value for key.
func (f *Fields[HK, HV]) Put(key HK, value HV) {
	for i := range f.entries {
		if keysEqual(f.entries[i].Key, key) {
			f.entries[i].Value = value
			return
		}
	}

	f.entries = append(f.entries, Field[HK, HV]{Key: key, Value: value})
}

// Append adds key and value as a new last entry, even if key is already present.
// Get returns the first entry for a key, so only Put keeps keys unique.
func (f *Fields[HK, HV]) Append(key HK, value HV) {
	f.entries = append(f.entries, Field[HK, HV]{Key: key, Value: value})
}

// Clone returns a copy of f that does not share entries with it.
func (f Fields[HK, HV]) Clone() Fields[HK, HV] {
	if f.entries == nil {
		return Fields[HK, HV]{}
	}

	return Fields[HK, HV]{entries: f.Entries()}
}

// Get returns the value for key and whether it was present.
func (f Fields[HK, HV]) Get(key HK) (HV, bool) {
	for _, entry := range f.entries {
		if keysEqual(entry.Key, key) {
			return entry.Value, true
		}
	}

	var zero HV

	return zero, false
}

// Len returns the number of entries.
func (f Fields[HK, HV]) Len() int {
	return len(f.entries)
}

// Keys returns the keys in insertion order.
func (f Fields[HK, HV]) Keys() []HK {
	keys := make([]HK, 0, len(f.entries))
	for _, entry := range f.entries {
		keys = append(keys, entry.Key)
	}

	return keys
}

// Values returns the values in insertion order.
func (f Fields[HK, HV]) Values() []HV {
	values := make([]HV, 0, len(f.entries))
	for _, entry := range f.entries {
		values = append(values, entry.Value)
	}

	return values
}

// Entries returns a copy of the entries in insertion order.
func (f Fields[HK, HV]) Entries() []Field[HK, HV] {
	entries := make([]Field[HK, HV], len(f.entries))
	copy(entries, f.entries)

	return entries
}

// All iterates over the entries in insertion order.
func (f Fields[HK, HV]) All() iter.Seq2[HK, HV] {
	return func(yield func(HK, HV) bool) {
		for _, entry := range f.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

func keysEqual(a, b any) bool {
	if ab, ok := a.([]byte); ok {
		if bb, ok := b.([]byte); ok {
			return bytes.Equal(ab, bb)
		}

		return false
	}

	return reflect.DeepEqual(a, b)
}
