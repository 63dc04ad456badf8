package oteladapters_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/hashmapper"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/objectmapper"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/oteladapters"
)

type readerRegistered struct {
	Name string `hash:"name"`
}

func newManualReaderCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "Failed to collect metrics")

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := newManualReaderCollector()
	labels := map[string]string{"target_type": "library.ReaderRegistered", "status": "success"}

	// act
	collector.RecordDuration("streamrecord_hash_mapper_resolution_duration_seconds", 150*time.Millisecond, labels)

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), "streamrecord_hash_mapper_resolution_duration_seconds")
	require.Len(t, histogram.DataPoints, 1, "Expected exactly one data point")

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001, "Histogram sum should be 0.15 seconds")

	expectedAttrs := attribute.NewSet(
		attribute.String("target_type", "library.ReaderRegistered"),
		attribute.String("status", "success"),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs), "Attributes should match")
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := newManualReaderCollector()
	labels := map[string]string{"target_type": "library.ReaderRegistered", "status": "error"}

	// act
	collector.IncrementCounter("streamrecord_hash_mapper_resolution_errors_total", labels)
	collector.IncrementCounter("streamrecord_hash_mapper_resolution_errors_total", labels)
	collector.IncrementCounter("streamrecord_hash_mapper_resolution_errors_total", labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "streamrecord_hash_mapper_resolution_errors_total")
	require.Len(t, counter.DataPoints, 1, "Expected exactly one data point")
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := newManualReaderCollector()

	// act
	collector.RecordValue("streamrecord_registered_type_aliases", 4, map[string]string{"mapper": "object"})

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "streamrecord_registered_type_aliases")
	require.Len(t, gauge.DataPoints, 1, "Expected exactly one data point")
	assert.Equal(t, 4.0, gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_With_StreamObjectMapper(t *testing.T) {
	// arrange
	reader, collector := newManualReaderCollector()

	binaryMapper, err := hashmapper.NewObjectHashMapper(conversion.NewDefaultService())
	require.NoError(t, err)

	som, err := objectmapper.NewStreamObjectMapper(binaryMapper, objectmapper.WithMetrics(collector))
	require.NoError(t, err)

	// act
	for range 5 {
		_, err = som.HashMapperFor(reflect.TypeFor[readerRegistered]())
		require.NoError(t, err)
	}

	// assert
	resourceMetrics := collect(t, reader)

	counter := findCounterMetric(t, resourceMetrics, "streamrecord_hash_mapper_resolutions_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(5), counter.DataPoints[0].Value)

	expectedAttrs := attribute.NewSet(
		attribute.String("target_type", "oteladapters_test.readerRegistered"),
		attribute.String("status", "success"),
	)
	assert.True(t, counter.DataPoints[0].Attributes.Equals(&expectedAttrs), "Attributes should match")

	histogram := findHistogramMetric(t, resourceMetrics, "streamrecord_hash_mapper_resolution_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(5), histogram.DataPoints[0].Count)
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Histogram[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if metric.Name == name {
				if h, ok := metric.Data.(metricdata.Histogram[float64]); ok {
					return &h
				}
			}
		}
	}
	t.Fatalf("Histogram metric %s not found", name)
	return nil
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Sum[int64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if metric.Name == name {
				if c, ok := metric.Data.(metricdata.Sum[int64]); ok {
					return &c
				}
			}
		}
	}
	t.Fatalf("Counter metric %s not found", name)
	return nil
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Gauge[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if metric.Name == name {
				if g, ok := metric.Data.(metricdata.Gauge[float64]); ok {
					return &g
				}
			}
		}
	}
	t.Fatalf("Gauge metric %s not found", name)
	return nil
}
