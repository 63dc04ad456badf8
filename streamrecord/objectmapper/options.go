package objectmapper

import (
	"errors"
	"reflect"
	"time"

	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord"
	"github.com/AntonStoeckl/stream-record-mapper-go/streamrecord/conversion"
)

// ErrNilMapperHook is returned when a nil MapperHook is supplied.
var ErrNilMapperHook = errors.Join(streamrecord.ErrPrecondition, errors.New("mapper hook must not be nil"))

// Logger interface for hash mapper resolution logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting StreamObjectMapper operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// MapperHook selects the HashMapper for a target type.
//
// It receives the conversion service of the StreamObjectMapper and the HashMapper the StreamObjectMapper would
// use by default: the BinaryAdapter if it was created for a binary mapper, else the configured mapper.
type MapperHook func(
	conversions *conversion.Service,
	targetType reflect.Type,
	configured streamrecord.HashMapper[any, any],
) (streamrecord.HashMapper[any, any], error)

// Option defines a functional option for configuring a StreamObjectMapper.
type Option func(*StreamObjectMapper) error

// WithConversionService sets the conversion service used to coerce field values to []byte
// and to classify simple types. Default: conversion.NewDefaultService().
func WithConversionService(conversions *conversion.Service) Option {
	return func(som *StreamObjectMapper) error {
		if conversions == nil {
			return streamrecord.ErrNilConversionService
		}

		som.conversions = conversions

		return nil
	}
}

// WithMapperHook replaces the default HashMapper selection.
func WithMapperHook(hook MapperHook) Option {
	return func(som *StreamObjectMapper) error {
		if hook == nil {
			return ErrNilMapperHook
		}

		som.hook = hook

		return nil
	}
}

// WithLogger sets the logger for the StreamObjectMapper.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: every resolved hash mapper with its target type and timing
// Error level: failed resolutions.
func WithLogger(logger Logger) Option {
	return func(som *StreamObjectMapper) error {
		som.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the StreamObjectMapper.
// The collector will receive resolution counts, resolution durations, and resolution errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(som *StreamObjectMapper) error {
		som.metricsCollector = collector
		return nil
	}
}
