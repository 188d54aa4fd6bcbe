//go:build !linux

package sysmetrics

import (
	"runtime"
	"time"
)

// sampleProcess falls back to the Go runtime's view of memory. CPU time is
// unavailable.
func sampleProcess() processSample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return processSample{rss: ms.Sys}
}

func processCPUTime() time.Duration { return 0 }
