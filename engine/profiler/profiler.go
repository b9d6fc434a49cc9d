// Package profiler reports frame rate and Go runtime memory statistics once per interval.
package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

const bytesPerMB = 1024 * 1024

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	// FPS is the number of frames per second over the interval.
	FPS float64
	// FrameTime is the average frame duration over the interval.
	FrameTime time.Duration
	// HeapMB is the size of live heap objects.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB per second, tracking churn.
	AllocRateMB float64
	// SysMB is the memory obtained from the OS.
	SysMB float64
	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
	// MaxPause is the longest GC pause during the interval.
	MaxPause time.Duration
}

// Profiler counts frames and logs a Stats summary at a fixed interval.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	clock  func() time.Time
	logger *slog.Logger
}

// NewProfiler creates a new Profiler. The interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		clock:          time.Now,
		logger:         slog.Default(),
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.clock()
	return p
}

// Tick should be called once per frame. When the interval has elapsed it samples the runtime
// memory statistics, logs them at Info and starts a new interval.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	now := p.clock()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:   elapsed / time.Duration(p.frameCount),
		HeapMB:      float64(p.memStats.Alloc) / bytesPerMB,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / bytesPerMB / elapsed.Seconds(),
		SysMB:       float64(p.memStats.Sys) / bytesPerMB,
		GCCount:     p.memStats.NumGC,
		MaxPause:    maxPause(&p.memStats, p.lastGCCount),
	}

	p.logger.Info("frame stats",
		"fps", stats.FPS,
		"frame_time", stats.FrameTime,
		"heap_mb", stats.HeapMB,
		"alloc_rate_mb", stats.AllocRateMB,
		"gc", stats.GCCount,
		"max_pause", stats.MaxPause,
		"sys_mb", stats.SysMB,
	)

	p.last = stats
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats logged by the most recent reporting Tick.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// maxPause returns the longest GC pause recorded since the cycle count since.
// PauseNs is a circular buffer holding the last 256 pauses.
func maxPause(m *runtime.MemStats, since uint32) time.Duration {
	count := m.NumGC
	if count == 0 {
		return 0
	}
	start := since
	if count-start > 256 {
		start = count - 256
	}
	var longest uint64
	for i := start; i < count; i++ {
		longest = max(longest, m.PauseNs[i%256])
	}
	return time.Duration(longest)
}
