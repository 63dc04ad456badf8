package conversion

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// isTextType returns true for string and []byte kinds, the representations the built-in conversions write to.
func isTextType(t reflect.Type) bool {
	return t.Kind() == reflect.String || (t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8)
}

func textOf(rv reflect.Value) string {
	if rv.Kind() == reflect.String {
		return rv.String()
	}

	return string(rv.Bytes())
}

func textAs(text string, targetType reflect.Type) any {
	if targetType.Kind() == reflect.String {
		return reflect.ValueOf(text).Convert(targetType).Interface()
	}

	return reflect.ValueOf([]byte(text)).Convert(targetType).Interface()
}

func canWriteText(t reflect.Type) bool {
	switch t {
	case timeType, durationType, uuidType:
		return true
	}

	if _, ok := simpleKinds[t.Kind()]; ok {
		return true
	}

	return isTextType(t) || t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

func canReadText(t reflect.Type) bool {
	switch t {
	case timeType, durationType, uuidType:
		return true
	}

	if _, ok := simpleKinds[t.Kind()]; ok {
		return true
	}

	return isTextType(t) || reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// writeText renders a simple value as text. The bool result is false if the type has no text form.
func (s *Service) writeText(rv reflect.Value) (string, bool, error) {
	switch rv.Type() {
	case timeType:
		return rv.Interface().(time.Time).Format(s.timeLayout), true, nil
	case durationType:
		return rv.Interface().(time.Duration).String(), true, nil
	case uuidType:
		return rv.Interface().(uuid.UUID).String(), true, nil
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), true, nil
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits()), true, nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true, nil
		}
	default:
	}

	marshaler, ok := textMarshalerOf(rv)
	if !ok {
		return "", false, nil
	}

	text, err := marshaler.MarshalText()
	if err != nil {
		return "", false, errors.Join(streamrecord.ErrFieldConversion, fmt.Errorf("marshaling %s to text", rv.Type()), err)
	}

	return string(text), true, nil
}

// readText parses text into a value of targetType. The bool result is false if the type has no text form.
func (s *Service) readText(text string, targetType reflect.Type) (reflect.Value, bool, error) {
	target := reflect.New(targetType).Elem()

	var err error

	switch targetType {
	case timeType:
		var t time.Time
		if t, err = time.Parse(s.timeLayout, text); err == nil {
			target.Set(reflect.ValueOf(t))
		}

		return target, true, parseError(text, targetType, err)

	case durationType:
		var d time.Duration
		if d, err = time.ParseDuration(text); err == nil {
			target.Set(reflect.ValueOf(d))
		}

		return target, true, parseError(text, targetType, err)

	case uuidType:
		var u uuid.UUID
		if u, err = uuid.Parse(text); err == nil {
			target.Set(reflect.ValueOf(u))
		}

		return target, true, parseError(text, targetType, err)
	}

	switch targetType.Kind() {
	case reflect.String:
		target.SetString(text)

		return target, true, nil

	case reflect.Bool:
		var b bool
		if b, err = strconv.ParseBool(text); err == nil {
			target.SetBool(b)
		}

		return target, true, parseError(text, targetType, err)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if i, err = strconv.ParseInt(text, 10, targetType.Bits()); err == nil {
			target.SetInt(i)
		}

		return target, true, parseError(text, targetType, err)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		if u, err = strconv.ParseUint(text, 10, targetType.Bits()); err == nil {
			target.SetUint(u)
		}

		return target, true, parseError(text, targetType, err)

	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = strconv.ParseFloat(text, targetType.Bits()); err == nil {
			target.SetFloat(f)
		}

		return target, true, parseError(text, targetType, err)

	case reflect.Complex64, reflect.Complex128:
		var c complex128
		if c, err = strconv.ParseComplex(text, targetType.Bits()); err == nil {
			target.SetComplex(c)
		}

		return target, true, parseError(text, targetType, err)

	case reflect.Slice:
		if targetType.Elem().Kind() == reflect.Uint8 {
			target.SetBytes([]byte(text))

			return target, true, nil
		}
	default:
	}

	ptr := reflect.New(targetType)

	unmarshaler, ok := ptr.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return reflect.Value{}, false, nil
	}

	if err = unmarshaler.UnmarshalText([]byte(text)); err != nil {
		return reflect.Value{}, true, parseError(text, targetType, err)
	}

	return ptr.Elem(), true, nil
}

func textMarshalerOf(rv reflect.Value) (encoding.TextMarshaler, bool) {
	if marshaler, ok := rv.Interface().(encoding.TextMarshaler); ok {
		return marshaler, true
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	marshaler, ok := ptr.Interface().(encoding.TextMarshaler)

	return marshaler, ok
}

func parseError(text string, targetType reflect.Type, err error) error {
	if err == nil {
		return nil
	}

	return errors.Join(streamrecord.ErrFieldConversion, fmt.Errorf("can not convert %q to %s", text, targetType), err)
}
