package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", Status(nil))
	assert.Equal(t, "error", Status(errors.New("boom")))
}

func TestRoundMS(t *testing.T) {
	assert.Equal(t, time.Duration(0), RoundMS(-time.Second))
	assert.Equal(t, time.Duration(0), RoundMS(0))
	assert.Equal(t, 2*time.Millisecond, RoundMS(1500*time.Microsecond))
	assert.Equal(t, time.Millisecond, RoundMS(1400*time.Microsecond))
}

func TestSummarizeStrings(t *testing.T) {
	joined, truncated := SummarizeStrings([]string{"a", "b"}, 6)
	assert.Equal(t, "a, b", joined)
	assert.False(t, truncated)

	joined, truncated = SummarizeStrings([]string{"a", "b", "c"}, 2)
	assert.Equal(t, "a, b", joined)
	assert.True(t, truncated)

	joined, truncated = SummarizeStrings([]string{"a"}, 0)
	assert.Empty(t, joined)
	assert.True(t, truncated)

	joined, truncated = SummarizeStrings(nil, 0)
	assert.Empty(t, joined)
	assert.False(t, truncated)
}
