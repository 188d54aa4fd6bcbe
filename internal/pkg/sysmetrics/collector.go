// Package sysmetrics samples the process's CPU and memory use while a benchmark
// runs, so reports show what the measurements cost.
package sysmetrics

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often a Collector samples.
const DefaultInterval = 250 * time.Millisecond

// Metrics is a snapshot of process resource use.
type Metrics struct {
	// CPUPercent is process CPU time over wall time since Start, where 100
	// means one fully busy core. -1 when unavailable.
	CPUPercent float64 `json:"cpu_percent" yaml:"cpu_percent"`

	// MemoryRSSBytes is the resident set size at the last sample.
	MemoryRSSBytes uint64 `json:"memory_rss_bytes" yaml:"memory_rss_bytes"`

	// PeakRSSBytes is the largest resident set size seen.
	PeakRSSBytes uint64 `json:"peak_rss_bytes" yaml:"peak_rss_bytes"`

	// MemoryLimitBytes is the cgroup memory limit, 0 when there is none.
	MemoryLimitBytes uint64 `json:"memory_limit_bytes,omitempty" yaml:"memory_limit_bytes,omitempty"`
}

// Collector samples metrics in the background between Start and Stop.
type Collector struct {
	interval time.Duration

	mu      sync.RWMutex
	metrics Metrics

	startWall time.Time
	startCPU  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Collector. A non-positive interval means DefaultInterval.
func New(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Collector{
		interval: interval,
		metrics:  Metrics{CPUPercent: -1},
	}
}

// Start takes a first sample and begins background collection.
func (c *Collector) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.startWall = time.Now()
	c.startCPU = processCPUTime()
	c.collect()

	c.wg.Add(1)
	go c.collectLoop(ctx)
}

// Stop halts collection and returns a final sample.
func (c *Collector) Stop() Metrics {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.collect()
	return c.Get()
}

// Get returns the most recent snapshot.
func (c *Collector) Get() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

func (c *Collector) collectLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

func (c *Collector) collect() {
	sample := sampleProcess()

	cpu := -1.0
	if wall := time.Since(c.startWall); !c.startWall.IsZero() && wall > 0 && sample.cpuTime > 0 {
		cpu = float64(sample.cpuTime-c.startCPU) / float64(wall) * 100
		if cpu < 0 {
			cpu = 0
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CPUPercent = cpu
	c.metrics.MemoryRSSBytes = sample.rss
	c.metrics.PeakRSSBytes = max(c.metrics.PeakRSSBytes, sample.rss, sample.peakRSS)
	c.metrics.MemoryLimitBytes = sample.limit
}

// processSample is one platform reading.
type processSample struct {
	cpuTime time.Duration
	rss     uint64
	peakRSS uint64
	limit   uint64
}
