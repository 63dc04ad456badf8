package conversion_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
)

type money struct {
	Amount   int64
	Currency string
}

type isbn string

type shelf struct {
	Row int
}

var errNegativeAmount = errors.New("negative amount")

func moneyConversions() conversion.CustomConversions {
	return conversion.NewCustomConversions(
		conversion.ConverterOf(func(m money) ([]byte, error) {
			if m.Amount < 0 {
				return nil, errNegativeAmount
			}

			return []byte(m.Currency + " " + time.Duration(m.Amount).String()), nil
		}),
		conversion.ConverterOf(func(b []byte) (money, error) {
			currency, _, _ := strings.Cut(string(b), " ")
			return money{Currency: currency}, nil
		}),
	)
}

//nolint:funlen
func Test_Service_Convert(t *testing.T) {
	bookID := uuid.MustParse("0b1e7a3c-3f5b-4d8e-9a6c-2f4b1d7e8c90")
	publishedAt := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	answer := 42

	tests := []struct {
		name       string
		value      any
		targetType reflect.Type
		expected   any
	}{
		{
			name:       "int to bytes",
			value:      42,
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("42"),
		},
		{
			name:       "bytes to int",
			value:      []byte("-17"),
			targetType: reflect.TypeFor[int](),
			expected:   -17,
		},
		{
			name:       "pointer to bytes",
			value:      &answer,
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("42"),
		},
		{
			name:       "bool to string",
			value:      true,
			targetType: reflect.TypeFor[string](),
			expected:   "true",
		},
		{
			name:       "bytes to bool",
			value:      []byte("false"),
			targetType: reflect.TypeFor[bool](),
			expected:   false,
		},
		{
			name:       "float to bytes",
			value:      1.5,
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("1.5"),
		},
		{
			name:       "bytes to uint8",
			value:      []byte("255"),
			targetType: reflect.TypeFor[uint8](),
			expected:   uint8(255),
		},
		{
			name:       "string to bytes",
			value:      "Dune",
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("Dune"),
		},
		{
			name:       "bytes to string",
			value:      []byte("Dune"),
			targetType: reflect.TypeFor[string](),
			expected:   "Dune",
		},
		{
			name:       "named string to bytes",
			value:      isbn("978-0441172719"),
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("978-0441172719"),
		},
		{
			name:       "bytes to named string",
			value:      []byte("978-0441172719"),
			targetType: reflect.TypeFor[isbn](),
			expected:   isbn("978-0441172719"),
		},
		{
			name:       "uuid to bytes",
			value:      bookID,
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("0b1e7a3c-3f5b-4d8e-9a6c-2f4b1d7e8c90"),
		},
		{
			name:       "bytes to uuid",
			value:      []byte("0b1e7a3c-3f5b-4d8e-9a6c-2f4b1d7e8c90"),
			targetType: reflect.TypeFor[uuid.UUID](),
			expected:   bookID,
		},
		{
			name:       "time to bytes",
			value:      publishedAt,
			targetType: reflect.TypeFor[[]byte](),
			expected:   []byte("2025-03-14T09:26:53.589Z"),
		},
		{
			name:       "bytes to time",
			value:      []byte("2025-03-14T09:26:53.589Z"),
			targetType: reflect.TypeFor[time.Time](),
			expected:   publishedAt,
		},
		{
			name:       "duration to string",
			value:      90 * time.Second,
			targetType: reflect.TypeFor[string](),
			expected:   "1m30s",
		},
		{
			name:       "string to duration",
			value:      "1m30s",
			targetType: reflect.TypeFor[time.Duration](),
			expected:   90 * time.Second,
		},
		{
			name:       "assignable value is returned as is",
			value:      money{Amount: 1, Currency: "EUR"},
			targetType: reflect.TypeFor[any](),
			expected:   money{Amount: 1, Currency: "EUR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			service := conversion.NewDefaultService()

			// act
			converted, err := service.Convert(tt.value, tt.targetType)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, converted)
		})
	}
}

func Test_Service_Convert_ErrorCases(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		targetType  reflect.Type
		expectedErr error
	}{
		{
			name:        "nil target type",
			value:       42,
			targetType:  nil,
			expectedErr: streamrecord.ErrPrecondition,
		},
		{
			name:        "struct without converter",
			value:       shelf{Row: 3},
			targetType:  reflect.TypeFor[[]byte](),
			expectedErr: streamrecord.ErrUnsupportedType,
		},
		{
			name:        "int to struct",
			value:       3,
			targetType:  reflect.TypeFor[shelf](),
			expectedErr: streamrecord.ErrUnsupportedType,
		},
		{
			name:        "unparsable int",
			value:       []byte("many"),
			targetType:  reflect.TypeFor[int](),
			expectedErr: streamrecord.ErrFieldConversion,
		},
		{
			name:        "int overflow",
			value:       []byte("256"),
			targetType:  reflect.TypeFor[uint8](),
			expectedErr: streamrecord.ErrFieldConversion,
		},
		{
			name:        "unparsable uuid",
			value:       []byte("not-a-uuid"),
			targetType:  reflect.TypeFor[uuid.UUID](),
			expectedErr: streamrecord.ErrFieldConversion,
		},
		{
			name:        "unparsable time",
			value:       "yesterday",
			targetType:  reflect.TypeFor[time.Time](),
			expectedErr: streamrecord.ErrFieldConversion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			service := conversion.NewDefaultService()

			// act
			_, err := service.Convert(tt.value, tt.targetType)

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_Service_Convert_Nil_Value(t *testing.T) {
	// arrange
	service := conversion.NewDefaultService()

	// act
	converted, err := service.Convert(nil, reflect.TypeFor[[]byte]())

	// assert
	require.NoError(t, err)
	assert.Nil(t, converted)
}

func Test_Service_Uses_Custom_Converters_First(t *testing.T) {
	// arrange
	service, err := conversion.NewService(moneyConversions())
	require.NoError(t, err)

	// act
	written, writeErr := service.ToBytes(money{Amount: 5, Currency: "EUR"})
	read, readErr := service.FromBytes([]byte("USD 5ns"), reflect.TypeFor[money]())

	// assert
	require.NoError(t, writeErr)
	require.NoError(t, readErr)
	assert.Equal(t, []byte("EUR 5ns"), written)
	assert.Equal(t, money{Currency: "USD"}, read)
}

func Test_Service_Wraps_Custom_Converter_Errors(t *testing.T) {
	// arrange
	service, err := conversion.NewService(moneyConversions())
	require.NoError(t, err)

	// act
	_, err = service.ToBytes(money{Amount: -1, Currency: "EUR"})

	// assert
	assert.ErrorIs(t, err, streamrecord.ErrFieldConversion)
	assert.ErrorIs(t, err, errNegativeAmount)
}

func Test_Service_ToBytes_Passes_Bytes_Through(t *testing.T) {
	// arrange
	service := conversion.NewDefaultService()
	value := []byte("Dune")

	// act
	converted, err := service.ToBytes(value)

	// assert
	require.NoError(t, err)
	assert.Same(t, &value[0], &converted[0])
}

func Test_Service_WithTimeLayout(t *testing.T) {
	// arrange
	service, err := conversion.NewService(conversion.NewCustomConversions(), conversion.WithTimeLayout(time.DateOnly))
	require.NoError(t, err)

	// act
	converted, err := service.ToBytes(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []byte("2025-03-14"), converted)
}

func Test_Service_WithTimeLayout_Rejects_Empty_Layout(t *testing.T) {
	// act
	service, err := conversion.NewService(conversion.NewCustomConversions(), conversion.WithTimeLayout(""))

	// assert
	assert.ErrorIs(t, err, conversion.ErrEmptyTimeLayout)
	assert.ErrorIs(t, err, streamrecord.ErrPrecondition)
	assert.Nil(t, service)
}

func Test_Service_CanConvert(t *testing.T) {
	service, err := conversion.NewService(moneyConversions())
	require.NoError(t, err)

	tests := []struct {
		name       string
		sourceType reflect.Type
		targetType reflect.Type
		expected   bool
	}{
		{name: "int to bytes", sourceType: reflect.TypeFor[int](), targetType: reflect.TypeFor[[]byte](), expected: true},
		{name: "bytes to uuid", sourceType: reflect.TypeFor[[]byte](), targetType: reflect.TypeFor[uuid.UUID](), expected: true},
		{name: "pointer to string", sourceType: reflect.TypeFor[*int](), targetType: reflect.TypeFor[string](), expected: true},
		{name: "custom converter", sourceType: reflect.TypeFor[money](), targetType: reflect.TypeFor[[]byte](), expected: true},
		{name: "struct to bytes", sourceType: reflect.TypeFor[shelf](), targetType: reflect.TypeFor[[]byte](), expected: false},
		{name: "int to struct", sourceType: reflect.TypeFor[int](), targetType: reflect.TypeFor[shelf](), expected: false},
		{name: "nil source", sourceType: nil, targetType: reflect.TypeFor[[]byte](), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.CanConvert(tt.sourceType, tt.targetType))
		})
	}
}
