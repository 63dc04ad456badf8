package hashmapper_test

import (
	"reflect"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/hashmapper"
)

var _ streamrecord.HashMapper[any, any] = (*hashmapper.JSONHashMapper)(nil)
var _ streamrecord.HashObjectReader[any, any] = (*hashmapper.JSONHashMapper)(nil)

type bookCopyAdded struct {
	Title  string   `json:"title"`
	Pages  int      `json:"pages"`
	Genres []string `json:"genres"`
}

type bookCopyRated struct {
	Rating    float64 `json:"rating"`
	Votes     int     `json:"votes"`
	Available bool    `json:"available"`
}

type bookCopyNote struct {
	Payload string `json:"payload"`
}

func newJSONHashMapper(t *testing.T, options ...hashmapper.JSONHashMapperOption) *hashmapper.JSONHashMapper {
	t.Helper()

	mapper, err := hashmapper.NewJSONHashMapper(options...)
	require.NoError(t, err)

	return mapper
}

func Test_JSONHashMapper_ToHash_Keeps_Member_Order(t *testing.T) {
	// arrange
	mapper := newJSONHashMapper(t)

	// act
	hash, err := mapper.ToHash(bookCopyAdded{Title: "Dune", Pages: 412, Genres: []string{"sci-fi", "classic"}})

	// assert
	require.NoError(t, err)
	assert.Equal(t, []any{"title", "pages", "genres"}, hash.Keys())
	assert.Equal(t, []any{`"Dune"`, `412`, `["sci-fi","classic"]`}, hash.Values())
}

func Test_JSONHashMapper_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "struct", value: bookCopyAdded{Title: "Dune", Pages: 412, Genres: []string{"sci-fi"}}},
		{name: "string payload", value: "Dune"},
		{name: "number payload", value: 412},
		{name: "float payload", value: 4.5},
		{name: "bool payload", value: true},
		{name: "struct with number and bool members", value: bookCopyRated{Rating: 4.5, Votes: 412, Available: true}},
		{name: "struct with a single payload member", value: bookCopyNote{Payload: "signed by the author"}},
		{name: "pointer to struct with a single payload member", value: &bookCopyNote{Payload: "first edition"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			mapper := newJSONHashMapper(t)

			// act
			hash, err := mapper.ToHash(tt.value)
			require.NoError(t, err)
			read, err := mapper.FromHashAs(reflect.TypeOf(tt.value), hash)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tt.value, read)
		})
	}
}

func Test_JSONHashMapper_Reads_Binary_Fields(t *testing.T) {
	// arrange
	mapper := newJSONHashMapper(t)
	hash := streamrecord.FieldsFrom(
		streamrecord.Field[any, any]{Key: []byte("title"), Value: []byte(`"Emma"`)},
		streamrecord.Field[any, any]{Key: "pages", Value: []byte(`474`)},
	)

	// act
	read, err := mapper.FromHashAs(reflect.TypeFor[bookCopyAdded](), hash)

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookCopyAdded{Title: "Emma", Pages: 474}, read)
}

func Test_JSONHashMapper_FromHash_Reads_Generic_Map(t *testing.T) {
	// arrange
	mapper := newJSONHashMapper(t)
	hash := streamrecord.FieldsFrom(
		streamrecord.Field[any, any]{Key: "title", Value: `"Emma"`},
		streamrecord.Field[any, any]{Key: "pages", Value: `474`},
	)

	// act
	read, err := mapper.FromHash(hash)

	// assert
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Emma", "pages": float64(474)}, read)
}

func Test_JSONHashMapper_ErrorCases(t *testing.T) {
	tests := []struct {
		name        string
		targetType  reflect.Type
		hash        streamrecord.Fields[any, any]
		expectedErr error
	}{
		{
			name:        "nil target type",
			targetType:  nil,
			hash:        streamrecord.Fields[any, any]{},
			expectedErr: streamrecord.ErrPrecondition,
		},
		{
			name:       "invalid json value",
			targetType: reflect.TypeFor[bookCopyAdded](),
			hash: streamrecord.FieldsFrom(
				streamrecord.Field[any, any]{Key: "title", Value: `Dune`},
			),
			expectedErr: streamrecord.ErrFieldConversion,
		},
		{
			name:       "value neither string nor bytes",
			targetType: reflect.TypeFor[bookCopyAdded](),
			hash: streamrecord.FieldsFrom(
				streamrecord.Field[any, any]{Key: "pages", Value: 412},
			),
			expectedErr: streamrecord.ErrFieldConversion,
		},
		{
			name:       "json value of wrong type",
			targetType: reflect.TypeFor[bookCopyAdded](),
			hash: streamrecord.FieldsFrom(
				streamrecord.Field[any, any]{Key: "pages", Value: `"many"`},
			),
			expectedErr: streamrecord.ErrFieldConversion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			mapper := newJSONHashMapper(t)

			// act
			_, err := mapper.FromHashAs(tt.targetType, tt.hash)

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_JSONHashMapper_WithJSONAPI(t *testing.T) {
	// arrange
	sorted := jsoniter.Config{SortMapKeys: true}.Froze()
	mapper := newJSONHashMapper(t, hashmapper.WithJSONAPI(sorted))

	// act
	hash, err := mapper.ToHash(map[string]int{"pages": 412, "edition": 2})

	// assert
	require.NoError(t, err)
	assert.Equal(t, []any{"edition", "pages"}, hash.Keys())
}

func Test_JSONHashMapper_WithJSONAPI_Rejects_Nil(t *testing.T) {
	// act
	mapper, err := hashmapper.NewJSONHashMapper(hashmapper.WithJSONAPI(nil))

	// assert
	assert.ErrorIs(t, err, streamrecord.ErrPrecondition)
	assert.Nil(t, mapper)
}
