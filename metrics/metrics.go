// Package metrics is the minimal instrumentation facade used across the SDK.
// The prometheus implementation is the default for executables; tests and
// embedders can plug in their own Recorder.
package metrics

import "time"

// Recorder counts attempt events and observes operation latencies.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
