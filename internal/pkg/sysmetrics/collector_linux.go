//go:build linux

package sysmetrics

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

func sampleProcess() processSample {
	s := processSample{
		rss:   readMemoryRSS(),
		limit: readCgroupMemoryLimit(),
	}

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		s.cpuTime = time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
		// ru_maxrss is in kilobytes on Linux.
		if ru.Maxrss > 0 {
			s.peakRSS = uint64(ru.Maxrss) * 1024
		}
	}
	return s
}

func processCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

// readMemoryRSS reads VmRSS from /proc/self/status.
func readMemoryRSS() uint64 {
	file, err := os.Open("/proc/self/status")
	if err != nil {
		return 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.HasPrefix(line, []byte("VmRSS:")) {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseUint(string(fields[1]), 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}

// readCgroupMemoryLimit tries cgroup v2, then v1.
func readCgroupMemoryLimit() uint64 {
	if limit := readLimitFile("/sys/fs/cgroup/memory.max"); limit > 0 {
		return limit
	}
	return readLimitFile("/sys/fs/cgroup/memory/memory.limit_in_bytes")
}

func readLimitFile(path string) uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return parseLimit(string(data))
}

// parseLimit reads a cgroup limit value. "max" and the v1 sentinel near 2^63
// both mean unlimited.
func parseLimit(s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "max" {
		return 0
	}
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil || val > 1<<62 {
		return 0
	}
	return val
}
