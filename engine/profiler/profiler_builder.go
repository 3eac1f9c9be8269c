package profiler

import (
	"log"
	"time"
)

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithEnabled turns stats logging on from the start.
//
// Parameters:
//   - enabled: true to log stats every update interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithEnabled(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.enabled = enabled
	}
}

// WithUpdateInterval sets how often stats are logged. Values <= 0 keep the 1 second default.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval.Seconds()
		}
	}
}

// WithTimeSource replaces the wall clock with a function returning seconds, such as
// window.Window.Time, so the frame clock matches the window's own timer.
//
// Parameters:
//   - now: function returning the current time in seconds
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithTimeSource(now func() float64) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger stats are written to. Defaults to log.Default().
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logger *log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}
