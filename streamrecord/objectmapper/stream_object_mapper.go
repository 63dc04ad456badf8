package objectmapper

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
)

// StreamObjectMapper provides the HashMapper for stream object conversion.
//
// It is configured with either a generic streamrecord.HashMapper[any, any], which is used as is, or with a
// streamrecord.BinaryHashMapper, which is wrapped in a BinaryAdapter so it can read field mappings whose keys
// and values are not []byte yet.
//
// StreamObjectMapper implements streamrecord.HashMapperProvider[any, any]. It holds no mutable state and is safe
// for concurrent use.
type StreamObjectMapper struct {
	mapper           streamrecord.HashMapper[any, any]
	binaryAdapter    optionalBinaryAdapter
	conversions      *conversion.Service
	hook             MapperHook
	logger           Logger
	metricsCollector MetricsCollector
}

// optionalBinaryAdapter is present if the StreamObjectMapper was created for a BinaryHashMapper.
type optionalBinaryAdapter struct {
	adapter *BinaryAdapter
	present bool
}

func (o optionalBinaryAdapter) get() (*BinaryAdapter, bool) {
	return o.adapter, o.present
}

// NewStreamObjectMapper creates a StreamObjectMapper for the configured mapper, which must be a
// streamrecord.BinaryHashMapper or a streamrecord.HashMapper[any, any].
func NewStreamObjectMapper(mapper any, options ...Option) (*StreamObjectMapper, error) {
	if mapper == nil {
		return nil, streamrecord.ErrNilHashMapper
	}

	som := &StreamObjectMapper{}

	for _, option := range options {
		if err := option(som); err != nil {
			return nil, err
		}
	}

	if som.conversions == nil {
		som.conversions = conversion.NewDefaultService()
	}

	switch m := mapper.(type) {
	case streamrecord.BinaryHashMapper:
		adapter, err := NewBinaryAdapter(m, som.conversions)
		if err != nil {
			return nil, err
		}

		som.mapper = adapter
		som.binaryAdapter = optionalBinaryAdapter{adapter: adapter, present: true}

	case streamrecord.HashMapper[any, any]:
		som.mapper = m

	default:
		return nil, errors.Join(
			streamrecord.ErrUnsupportedType,
			fmt.Errorf("%T is neither a BinaryHashMapper nor a HashMapper[any, any]", mapper),
		)
	}

	return som, nil
}

// HashMapperFor returns the HashMapper to use for targetType.
//
// If the selected mapper is a streamrecord.HashObjectReader, the returned HashMapper reads every field mapping
// into targetType, which lets one configured mapper serve any number of target types.
func (som *StreamObjectMapper) HashMapperFor(targetType reflect.Type) (streamrecord.HashMapper[any, any], error) {
	start := time.Now()

	mapper, err := som.doGetHashMapper(targetType)
	if err == nil && mapper == nil {
		err = errors.Join(streamrecord.ErrUnsupportedType, fmt.Errorf("no hash mapper for %s", typeName(targetType)))
	}

	if err != nil {
		som.logResolveError(targetType, err)
		som.recordResolveMetrics(targetType, statusError, time.Since(start))

		return nil, err
	}

	mapperType := fmt.Sprintf("%T", mapper)

	if reader, ok := mapper.(streamrecord.HashObjectReader[any, any]); ok {
		mapper = typedHashMapper{
			mapper:     mapper,
			reader:     reader,
			targetType: targetType,
		}
	}

	duration := time.Since(start)
	som.logResolved(targetType, mapperType, duration)
	som.recordResolveMetrics(targetType, statusSuccess, duration)

	return mapper, nil
}

// IsSimpleType returns true if targetType is written as one atomic value, see conversion.CustomConversions.
func (som *StreamObjectMapper) IsSimpleType(targetType reflect.Type) bool {
	return som.conversions.CustomConversions().IsSimpleType(targetType)
}

// ConversionService returns the conversion service the StreamObjectMapper uses.
func (som *StreamObjectMapper) ConversionService() *conversion.Service {
	return som.conversions
}

func (som *StreamObjectMapper) doGetHashMapper(targetType reflect.Type) (streamrecord.HashMapper[any, any], error) {
	if targetType == nil {
		return nil, errors.Join(streamrecord.ErrPrecondition, errors.New("target type must not be nil"))
	}

	configured := som.configuredHashMapper()

	if som.hook != nil {
		return som.hook(som.conversions, targetType, configured)
	}

	return configured, nil
}

func (som *StreamObjectMapper) configuredHashMapper() streamrecord.HashMapper[any, any] {
	if adapter, ok := som.binaryAdapter.get(); ok {
		return adapter
	}

	return som.mapper
}
