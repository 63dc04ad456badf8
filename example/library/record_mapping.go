package library

import (
	"errors"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/hashmapper"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/objectmapper"
)

var (
	// ErrMappingToRecordFailed is returned when a domain event can not be written to a stream record.
	ErrMappingToRecordFailed = errors.New("mapping to stream record failed")

	// ErrMappingToDomainEventFailed is returned when a stream record can not be read as domain event.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")
)

// RecordMapper writes domain events to stream records and reads them back.
type RecordMapper struct {
	provider *objectmapper.StreamObjectMapper
}

// NewRecordMapper creates a RecordMapper which knows all domain events of the library.
// The options are passed on to the underlying objectmapper.StreamObjectMapper.
func NewRecordMapper(options ...objectmapper.Option) (*RecordMapper, error) {
	conversions := conversion.NewDefaultService()

	objectHashMapper, err := hashmapper.NewObjectHashMapper(
		conversions,
		hashmapper.WithTypeAlias(BookCopyAddedToCirculationEventType, BookCopyAddedToCirculation{}),
		hashmapper.WithTypeAlias(BookCopyLentToReaderEventType, BookCopyLentToReader{}),
		hashmapper.WithTypeAlias(BookCopyReturnedByReaderEventType, BookCopyReturnedByReader{}),
		hashmapper.WithTypeAlias(ReaderRegisteredEventType, ReaderRegistered{}),
	)
	if err != nil {
		return nil, err
	}

	options = append([]objectmapper.Option{objectmapper.WithConversionService(conversions)}, options...)

	provider, err := objectmapper.NewStreamObjectMapper(objectHashMapper, options...)
	if err != nil {
		return nil, err
	}

	return &RecordMapper{provider: provider}, nil
}

// RecordFrom converts a DomainEvent to a MapRecord of the given stream, the id is generated on append.
func (m *RecordMapper) RecordFrom(stream streamrecord.StreamKey, event DomainEvent) (streamrecord.MapRecord[any, any], error) {
	record, err := streamrecord.ToMapRecord[any, any](
		m.provider,
		streamrecord.BuildObjectRecord(stream, streamrecord.AutoGenerateID, event),
	)
	if err != nil {
		return streamrecord.MapRecord[any, any]{}, errors.Join(ErrMappingToRecordFailed, err)
	}

	return record, nil
}

// DomainEventFrom converts a MapRecord to the DomainEvent named by its type hint.
func (m *RecordMapper) DomainEventFrom(record streamrecord.MapRecord[any, any]) (DomainEvent, error) {
	objectRecord, err := streamrecord.ToObjectRecord[DomainEvent](record, m.provider)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return objectRecord.Value(), nil
}

// DomainEventsFrom converts multiple MapRecords to DomainEvents.
func (m *RecordMapper) DomainEventsFrom(records []streamrecord.MapRecord[any, any]) (DomainEvents, error) {
	objectRecords, err := streamrecord.ToObjectRecords[DomainEvent](records, m.provider)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	domainEvents := make(DomainEvents, 0, len(objectRecords))
	for _, objectRecord := range objectRecords {
		domainEvents = append(domainEvents, objectRecord.Value())
	}

	return domainEvents, nil
}
