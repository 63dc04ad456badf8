package conversion

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

const defaultTimeLayout = time.RFC3339Nano

// ErrEmptyTimeLayout is returned when an empty time layout is configured.
var ErrEmptyTimeLayout = errors.Join(streamrecord.ErrPrecondition, errors.New("time layout must not be empty"))

// Service converts values between runtime types, most notably to and from []byte.
//
// It is immutable after construction and safe for concurrent use.
type Service struct {
	customConversions CustomConversions
	converters        map[ConvertiblePair]ConverterFunc
	timeLayout        string
}

// Option defines a functional option for configuring a Service.
type Option func(*Service) error

// WithTimeLayout sets the layout used to convert time.Time values to text and back. Default: time.RFC3339Nano.
func WithTimeLayout(layout string) Option {
	return func(s *Service) error {
		if layout == "" {
			return ErrEmptyTimeLayout
		}

		s.timeLayout = layout

		return nil
	}
}

// NewService creates a Service which applies the given custom conversions before the built-in ones.
func NewService(customConversions CustomConversions, options ...Option) (*Service, error) {
	s := &Service{
		customConversions: customConversions,
		converters:        make(map[ConvertiblePair]ConverterFunc),
		timeLayout:        defaultTimeLayout,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	customConversions.registerConvertersIn(s.converters)

	return s, nil
}

// NewDefaultService creates a Service with the built-in conversions only.
func NewDefaultService() *Service {
	return &Service{
		customConversions: NewCustomConversions(),
		converters:        make(map[ConvertiblePair]ConverterFunc),
		timeLayout:        defaultTimeLayout,
	}
}

// CustomConversions returns the registry the Service was built from.
func (s *Service) CustomConversions() CustomConversions {
	return s.customConversions
}

// IsSimpleType delegates to CustomConversions.IsSimpleType.
func (s *Service) IsSimpleType(t reflect.Type) bool {
	return s.customConversions.IsSimpleType(t)
}

// CanConvert returns true if Convert supports the given source and target type.
func (s *Service) CanConvert(sourceType reflect.Type, targetType reflect.Type) bool {
	if sourceType == nil || targetType == nil {
		return false
	}

	if _, ok := s.converters[ConvertiblePair{SourceType: sourceType, TargetType: targetType}]; ok {
		return true
	}

	if sourceType.AssignableTo(targetType) {
		return true
	}

	if sourceType.Kind() == reflect.Pointer {
		return s.CanConvert(sourceType.Elem(), targetType)
	}

	if isTextType(targetType) && canWriteText(sourceType) {
		return true
	}

	return isTextType(sourceType) && canReadText(targetType)
}

// Convert converts value to targetType. A nil value converts to nil.
//
// It fails with streamrecord.ErrUnsupportedType if no conversion exists for the pair of types
// and with streamrecord.ErrFieldConversion if the conversion itself fails.
func (s *Service) Convert(value any, targetType reflect.Type) (any, error) {
	if targetType == nil {
		return nil, errors.Join(streamrecord.ErrPrecondition, errors.New("target type must not be nil"))
	}

	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	sourceType := rv.Type()

	if convert, ok := s.converters[ConvertiblePair{SourceType: sourceType, TargetType: targetType}]; ok {
		converted, err := convert(value)
		if err != nil {
			return nil, asConversionError(err)
		}

		return converted, nil
	}

	if sourceType.AssignableTo(targetType) {
		return value, nil
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}

		return s.Convert(rv.Elem().Interface(), targetType)
	}

	if isTextType(targetType) {
		text, ok, err := s.writeText(rv)
		if err != nil {
			return nil, err
		}

		if ok {
			return textAs(text, targetType), nil
		}
	}

	if isTextType(sourceType) {
		converted, ok, err := s.readText(textOf(rv), targetType)
		if err != nil {
			return nil, err
		}

		if ok {
			return converted.Interface(), nil
		}
	}

	return nil, errors.Join(
		streamrecord.ErrUnsupportedType,
		fmt.Errorf("no converter found capable of converting from %s to %s", sourceType, targetType),
	)
}

// ToBytes converts value to []byte. A []byte value is returned as is.
func (s *Service) ToBytes(value any) ([]byte, error) {
	if b, ok := value.([]byte); ok {
		return b, nil
	}

	converted, err := s.Convert(value, bytesType)
	if err != nil {
		return nil, err
	}

	if converted == nil {
		return nil, nil
	}

	b, ok := converted.([]byte)
	if !ok {
		return nil, errors.Join(
			streamrecord.ErrFieldConversion,
			fmt.Errorf("converter for %T returned %T instead of []byte", value, converted),
		)
	}

	return b, nil
}

// FromBytes converts data to targetType.
func (s *Service) FromBytes(data []byte, targetType reflect.Type) (any, error) {
	return s.Convert(data, targetType)
}

func asConversionError(err error) error {
	if errors.Is(err, streamrecord.ErrFieldConversion) || errors.Is(err, streamrecord.ErrUnsupportedType) {
		return err
	}

	return errors.Join(streamrecord.ErrFieldConversion, err)
}
