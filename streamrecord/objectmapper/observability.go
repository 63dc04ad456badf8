package objectmapper

import (
	"math"
	"reflect"
	"time"
)

const (
	logMsgHashMapperResolved        = "hash mapper resolved"
	logMsgHashMapperResolveFailed   = "hash mapper resolution failed"
	logAttrError                    = "error"
	logAttrTargetType               = "target_type"
	logAttrMapperType               = "mapper_type"
	logAttrDurationMS               = "duration_ms"
	metricHashMapperResolutions     = "streamrecord_hash_mapper_resolutions_total"
	metricHashMapperResolveDuration = "streamrecord_hash_mapper_resolution_duration_seconds"
	metricHashMapperResolveErrors   = "streamrecord_hash_mapper_resolution_errors_total"
	labelTargetType                 = "target_type"
	labelStatus                     = "status"
	statusSuccess                   = "success"
	statusError                     = "error"
)

// logResolved logs a resolved hash mapper at debug level if the logger is configured.
func (som *StreamObjectMapper) logResolved(targetType reflect.Type, mapperType string, duration time.Duration) {
	if som.logger != nil {
		som.logger.Debug(
			logMsgHashMapperResolved,
			logAttrTargetType, typeName(targetType),
			logAttrMapperType, mapperType,
			logAttrDurationMS, toMilliseconds(duration),
		)
	}
}

// logResolveError logs a failed resolution at error level if the logger is configured.
func (som *StreamObjectMapper) logResolveError(targetType reflect.Type, err error) {
	if som.logger != nil {
		som.logger.Error(logMsgHashMapperResolveFailed, logAttrTargetType, typeName(targetType), logAttrError, err.Error())
	}
}

// recordResolveMetrics records resolution count and duration if the metrics collector is configured.
func (som *StreamObjectMapper) recordResolveMetrics(targetType reflect.Type, status string, duration time.Duration) {
	if som.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelTargetType: typeName(targetType),
		labelStatus:     status,
	}

	som.metricsCollector.IncrementCounter(metricHashMapperResolutions, labels)
	som.metricsCollector.RecordDuration(metricHashMapperResolveDuration, duration, labels)

	if status == statusError {
		som.metricsCollector.IncrementCounter(metricHashMapperResolveErrors, labels)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
