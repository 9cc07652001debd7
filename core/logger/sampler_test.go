package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioSamplerAllow(t *testing.T) {
	s := newRatioSampler(1, 3)

	var allowed int
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)
}

func TestRatioSamplerDisabled(t *testing.T) {
	s := newRatioSampler(0, 0)
	for i := 0; i < 5; i++ {
		assert.True(t, s.Allow())
	}
}

func TestRatioSamplerClampsNumerator(t *testing.T) {
	s := newRatioSampler(10, 3)
	for i := 0; i < 6; i++ {
		assert.True(t, s.Allow())
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		spec string
		num  int
		den  int
	}{
		{"", 0, 0},
		{"1/50", 1, 50},
		{" 2 / 5 ", 2, 5},
		{"10", 1, 10},
		{"0", 0, 0},
		{"-3", 0, 0},
		{"abc", 0, 0},
		{"a/b", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.spec)
		assert.Equal(t, tc.num, num, tc.spec)
		assert.Equal(t, tc.den, den, tc.spec)
	}
}
