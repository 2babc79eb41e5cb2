// Package metrics provides dispatch instrumentation hooks.
package metrics

import "time"

// Dispatch outcomes reported to a Recorder.
const (
	OutcomeSuccess         = "success"
	OutcomeUnsupported     = "unsupported"
	OutcomeTransportError  = "transport_error"
	OutcomeHTTPError       = "http_error"
	OutcomeExtractionError = "extraction_error"
)

// Recorder defines minimal metric hooks for router instrumentation.
type Recorder interface {
	ObserveDispatch(provider string, outcome string, duration time.Duration)
}

// NoopRecorder discards all observations.
type NoopRecorder struct{}

func (NoopRecorder) ObserveDispatch(string, string, time.Duration) {}
