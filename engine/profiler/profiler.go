package profiler

import (
	"log"
	"runtime"
	"time"
)

// FrameStats describes one frame as seen by the Profiler clock.
type FrameStats struct {
	Frame   uint64  // number of frames ticked so far, starting at 1
	Elapsed float64 // seconds since the profiler started (or the time source value)
	Delta   float64 // seconds since the previous frame
	FPS     float64 // frames per second over the last log interval; 0 until the first interval ends
	Logged  bool    // true if stats were logged this tick
}

// Profiler is the frame clock of the render loop. Every Tick reports elapsed and delta time, and
// when enabled it tracks frame rate and memory statistics for performance monitoring, logging
// them at a configurable interval.
type Profiler struct {
	enabled        bool
	logger         *log.Logger
	now            func() float64
	updateInterval float64

	frame          uint64
	lastElapsed    float64
	intervalStart  float64
	intervalFrames int
	fps            float64

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. Logging is disabled and the update interval is 1 second
// unless overridden by options. Without WithTimeSource the clock is wall time since creation.
//
// Parameters:
//   - options: functional options for profiler configuration
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	start := time.Now()
	p := &Profiler{
		logger:         log.Default(),
		now:            func() float64 { return time.Since(start).Seconds() },
		updateInterval: time.Second.Seconds(),
		memStats:       runtime.MemStats{},
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastElapsed = p.now()
	p.intervalStart = p.lastElapsed
	return p
}

// Enabled reports whether stats logging is on.
func (p *Profiler) Enabled() bool {
	return p.enabled
}

// SetEnabled turns stats logging on or off. The clock runs either way.
//
// Parameters:
//   - enabled: true to log stats every update interval
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when enabled and the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - FrameStats: the timing of this frame
func (p *Profiler) Tick() FrameStats {
	p.frame++
	p.intervalFrames++
	current := p.now()

	stats := FrameStats{
		Frame:   p.frame,
		Elapsed: current,
		Delta:   current - p.lastElapsed,
	}
	p.lastElapsed = current

	elapsed := current - p.intervalStart
	if elapsed >= p.updateInterval && elapsed > 0 {
		p.fps = float64(p.intervalFrames) / elapsed
		if p.enabled {
			p.logStats(elapsed)
			stats.Logged = true
		}
		p.intervalFrames = 0
		p.intervalStart = current
	}
	stats.FPS = p.fps
	return stats
}

// logStats reads the runtime memory statistics and prints one line.
func (p *Profiler) logStats(elapsed float64) {
	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
