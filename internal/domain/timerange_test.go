package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeAt(startMin, endMin int) TimeRange {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: base.Add(time.Duration(startMin) * time.Minute),
		End:   base.Add(time.Duration(endMin) * time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{"identical", rangeAt(0, 60), rangeAt(0, 60), true},
		{"partial overlap front", rangeAt(0, 60), rangeAt(30, 90), true},
		{"partial overlap back", rangeAt(30, 90), rangeAt(0, 60), true},
		{"a contains b", rangeAt(0, 120), rangeAt(30, 60), true},
		{"b contains a", rangeAt(30, 60), rangeAt(0, 120), true},
		{"disjoint before", rangeAt(0, 30), rangeAt(60, 90), false},
		{"disjoint after", rangeAt(60, 90), rangeAt(0, 30), false},
		{"touching a ends at b start", rangeAt(0, 10), rangeAt(10, 20), false},
		{"touching b ends at a start", rangeAt(10, 20), rangeAt(0, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
		})
	}
}

// Overlap detection is symmetric for every non-touching pair; the boundary
// rule is the one place the three-clause check is deliberately one-sided, and
// there both orders still agree on "no conflict".
func TestOverlaps_Symmetry(t *testing.T) {
	pairs := [][2]TimeRange{
		{rangeAt(0, 60), rangeAt(30, 90)},
		{rangeAt(0, 120), rangeAt(30, 60)},
		{rangeAt(0, 30), rangeAt(60, 90)},
		{rangeAt(0, 10), rangeAt(10, 20)},
	}
	for _, p := range pairs {
		assert.Equal(t, Overlaps(p[0], p[1]), Overlaps(p[1], p[0]))
	}
}

func TestOverlaps_ZeroWidth(t *testing.T) {
	// A zero-width range on another range's start boundary triggers the
	// contains clause even though the first two clauses reject it.
	zero := rangeAt(10, 10)
	assert.True(t, Overlaps(rangeAt(0, 20), zero))
	assert.True(t, Overlaps(zero, rangeAt(10, 20)))
	assert.False(t, Overlaps(zero, rangeAt(20, 30)))
}

func TestOverlapWindow(t *testing.T) {
	got := OverlapWindow(rangeAt(0, 60), rangeAt(30, 90))
	require.Equal(t, rangeAt(30, 60), got)

	// Contained range: the window is the inner range itself.
	got = OverlapWindow(rangeAt(0, 120), rangeAt(30, 60))
	require.Equal(t, rangeAt(30, 60), got)
}

func TestTimeRangeDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, rangeAt(30, 120).Duration())
}
