//go:build linux

package sysmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{in: "max\n", want: 0},
		{in: "536870912\n", want: 536870912},
		{in: "9223372036854771712", want: 0},
		{in: "garbage", want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLimit(tt.in), tt.in)
	}
}

func TestReadMemoryRSS(t *testing.T) {
	assert.NotZero(t, readMemoryRSS())
}
