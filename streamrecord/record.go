package streamrecord

// Record is a stream entry: a stream key, an id and a body.
//
// The set of records is closed, the only implementations are ObjectRecord and MapRecord.
type Record interface {
	Stream() StreamKey
	ID() RecordID

	sealedRecord()
}

// objectValueRecord is implemented by every ObjectRecord instantiation and gives the converter access
// to the value without knowing V.
type objectValueRecord interface {
	Record
	objectValue() any
}

/***** ObjectRecord *****/

// ObjectRecord is a Record carrying one typed value.
type ObjectRecord[V any] struct {
	stream StreamKey
	id     RecordID
	value  V
}

// BuildObjectRecord is a factory method for ObjectRecord.
func BuildObjectRecord[V any](stream StreamKey, id RecordID, value V) ObjectRecord[V] {
	return ObjectRecord[V]{
		stream: stream,
		id:     id,
		value:  value,
	}
}

func (r ObjectRecord[V]) Stream() StreamKey {
	return r.stream
}

func (r ObjectRecord[V]) ID() RecordID {
	return r.id
}

func (r ObjectRecord[V]) Value() V {
	return r.value
}

// WithStreamKey returns a copy of the record bound to another stream.
func (r ObjectRecord[V]) WithStreamKey(stream StreamKey) ObjectRecord[V] {
	r.stream = stream
	return r
}

// WithID returns a copy of the record with another id.
func (r ObjectRecord[V]) WithID(id RecordID) ObjectRecord[V] {
	r.id = id
	return r
}

func (r ObjectRecord[V]) objectValue() any {
	return r.value
}

func (r ObjectRecord[V]) sealedRecord() {}

/***** MapRecord *****/

// MapRecord is a Record carrying an ordered field mapping.
type MapRecord[HK any, HV any] struct {
	stream StreamKey
	id     RecordID
	fields Fields[HK, HV]
}

// BuildMapRecord is a factory method for MapRecord. The record keeps its own copy of fields.
func BuildMapRecord[HK any, HV any](stream StreamKey, id RecordID, fields Fields[HK, HV]) MapRecord[HK, HV] {
	return MapRecord[HK, HV]{
		stream: stream,
		id:     id,
		fields: fields.Clone(),
	}
}

func (r MapRecord[HK, HV]) Stream() StreamKey {
	return r.stream
}

func (r MapRecord[HK, HV]) ID() RecordID {
	return r.id
}

// Fields returns a copy of the record's field mapping.
func (r MapRecord[HK, HV]) Fields() Fields[HK, HV] {
	return r.fields.Clone()
}

// WithStreamKey returns a copy of the record bound to another stream.
func (r MapRecord[HK, HV]) WithStreamKey(stream StreamKey) MapRecord[HK, HV] {
	r.stream = stream
	return r
}

// WithID returns a copy of the record with another id.
func (r MapRecord[HK, HV]) WithID(id RecordID) MapRecord[HK, HV] {
	r.id = id
	return r
}

func (r MapRecord[HK, HV]) sealedRecord() {}
