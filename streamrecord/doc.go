// Package streamrecord provides the record types and the record conversion functions
// for mapping application objects to stream entries and back.
//
// A stream entry is either a typed object (ObjectRecord) or an ordered field mapping (MapRecord).
// The conversion between both is delegated to a HashMapper which a HashMapperProvider resolves
// per target type.
//
// Key types:
//   - Record: closed set of ObjectRecord and MapRecord
//   - Fields: ordered field mapping, insertion order is preserved
//   - HashMapper, HashObjectReader, BinaryHashMapper: field mapping strategies
//   - HashMapperProvider: resolves a HashMapper for a target type
//
// Common usage pattern:
//
//	mapper, _ := objectmapper.NewStreamObjectMapper(objectHashMapper)
//
//	mapRecord, err := streamrecord.ToMapRecord[any, any](mapper, streamrecord.BuildObjectRecord("orders", streamrecord.AutoGenerateID, order))
//	if err != nil {
//		// handle error
//	}
//
//	objectRecords, err := streamrecord.ToObjectRecords[Order](mapRecords, mapper)
//
// All failures are returned as errors that match one of the sentinel errors of this package with errors.Is.
package streamrecord
