package simd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesEqual(t *testing.T) {
	long := strings.Repeat("abcdefgh", 5)

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"both empty", "", "", true},
		{"different lengths", "abc", "abcd", false},
		{"short equal", "abc", "abc", true},
		{"short differ", "abc", "abd", false},
		{"long equal", long, long, true},
		{"long differ in word", long, "x" + long[1:], false},
		{"long differ in tail", long + "xyz", long + "xyw", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BytesEqual([]byte(tt.a), []byte(tt.b)))
		})
	}
}

func TestBytesEqualWordsMatchesScalar(t *testing.T) {
	a := []byte(strings.Repeat("0123456789", 4))
	for i := range a {
		b := append([]byte(nil), a...)
		b[i] ^= 0xff
		assert.Equal(t, bytesEqualScalar(a, b), bytesEqualWords(a, b), "flip at %d", i)
	}
	assert.True(t, bytesEqualWords(a, a))
}

func TestCPUFeaturesString(t *testing.T) {
	assert.Equal(t, "none", CPUFeatures{}.String())
	assert.Equal(t, "avx2 sse2", CPUFeatures{HasAVX2: true, HasSSE2: true}.String())
	assert.False(t, CPUFeatures{HasPOPCNT: true}.Wide())
	assert.True(t, CPUFeatures{HasASIMD: true}.Wide())
	assert.Equal(t, cpuFeatures, GetCPUFeatures())
}
