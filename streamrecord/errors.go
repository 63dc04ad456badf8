package streamrecord

import (
	"errors"
)

var (
	// ErrUnsupportedType is returned when no hash mapper or converter is available for a requested type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFieldConversion is returned when a single field value can not be converted to or from its target representation.
	ErrFieldConversion = errors.New("field conversion failed")

	// ErrPrecondition is returned when a required argument is missing.
	ErrPrecondition = errors.New("precondition failed")

	// ErrNilHashMapper is returned when a nil HashMapper is supplied.
	ErrNilHashMapper = errors.Join(ErrPrecondition, errors.New("hash mapper must not be nil"))

	// ErrNilConversionService is returned when a nil conversion service is supplied.
	ErrNilConversionService = errors.Join(ErrPrecondition, errors.New("conversion service must not be nil"))

	// ErrNilProvider is returned when a nil HashMapperProvider is supplied.
	ErrNilProvider = errors.Join(ErrPrecondition, errors.New("hash mapper provider must not be nil"))

	// ErrUnsupportedRecordVariant is returned for records that are neither an ObjectRecord nor a MapRecord
	// with the requested field types.
	ErrUnsupportedRecordVariant = errors.New("unsupported record variant")

	// ErrInvalidRecordID is returned when a record id does not follow the <millisecondsTime>-<sequenceNumber> format.
	ErrInvalidRecordID = errors.New("record id is not valid")
)
