// Package helper provides test doubles for stream record mapping tests.
//
// This package contains a slog.Handler spy for capturing and validating log output,
// a metrics collector spy, and a hash mapper provider spy that counts resolutions.
package helper
