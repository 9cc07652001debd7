package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		name  string
		count int
		size  int
		want  int
	}{
		{"empty", 0, 3, 0},
		{"partial last page", 7, 3, 3},
		{"exact fit", 9, 3, 3},
		{"single record", 1, 3, 1},
		{"one full page", 3, 3, 1},
		{"negative count", -1, 3, 0},
		{"zero size", 5, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalPages(tc.count, tc.size))
		})
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		total     int
		want      int
	}{
		{"below range", 0, 3, 1},
		{"above range", 4, 3, 1},
		{"in range", 2, 3, 2},
		{"first page", 1, 3, 1},
		{"last page", 3, 3, 3},
		{"negative", -5, 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp(tc.requested, tc.total))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, PageSize))
	assert.Equal(t, 3, Offset(2, PageSize))
	assert.Equal(t, 6, Offset(3, PageSize))
	assert.Equal(t, 0, Offset(0, PageSize))
}
