// Package simd reports CPU vector capabilities and provides byte comparison
// helpers that take the wide path when the CPU supports it.
package simd

import (
	"encoding/binary"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures holds detected CPU capabilities
type CPUFeatures struct {
	HasAVX2   bool `json:"avx2" yaml:"avx2"`
	HasSSE42  bool `json:"sse42" yaml:"sse42"`
	HasSSE2   bool `json:"sse2" yaml:"sse2"`
	HasPOPCNT bool `json:"popcnt" yaml:"popcnt"`
	HasASIMD  bool `json:"asimd" yaml:"asimd"`
}

var cpuFeatures CPUFeatures

func init() {
	cpuFeatures = CPUFeatures{
		HasAVX2:   cpu.X86.HasAVX2,
		HasSSE42:  cpu.X86.HasSSE42,
		HasSSE2:   cpu.X86.HasSSE2,
		HasPOPCNT: cpu.X86.HasPOPCNT,
		HasASIMD:  cpu.ARM64.HasASIMD,
	}
}

// GetCPUFeatures returns detected CPU features
func GetCPUFeatures() CPUFeatures {
	return cpuFeatures
}

// Wide reports whether the CPU has any vector unit worth using.
func (f CPUFeatures) Wide() bool {
	return f.HasAVX2 || f.HasSSE2 || f.HasASIMD
}

// String lists the detected features, e.g. "avx2 sse4.2 sse2 popcnt".
func (f CPUFeatures) String() string {
	var names []string
	if f.HasAVX2 {
		names = append(names, "avx2")
	}
	if f.HasSSE42 {
		names = append(names, "sse4.2")
	}
	if f.HasSSE2 {
		names = append(names, "sse2")
	}
	if f.HasPOPCNT {
		names = append(names, "popcnt")
	}
	if f.HasASIMD {
		names = append(names, "asimd")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

// wordThreshold is the length from which comparing 8 bytes at a time pays off.
const wordThreshold = 16

// BytesEqual reports whether a and b hold the same bytes.
func BytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	if cpuFeatures.Wide() && len(a) >= wordThreshold {
		return bytesEqualWords(a, b)
	}
	return bytesEqualScalar(a, b)
}

// bytesEqualWords compares 64-bit words, then the tail byte by byte.
func bytesEqualWords(a, b []byte) bool {
	i := 0
	for ; i+8 <= len(a); i += 8 {
		if binary.LittleEndian.Uint64(a[i:]) != binary.LittleEndian.Uint64(b[i:]) {
			return false
		}
	}
	return bytesEqualScalar(a[i:], b[i:])
}

func bytesEqualScalar(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
