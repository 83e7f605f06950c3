package domain

import "time"

// TimeRange is a half-open-ish booking window. The overlap rule below treats
// boundaries asymmetrically: an interval ending exactly when another starts
// does not overlap it.
type TimeRange struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// NewTimeRange returns a TimeRange over [start, end). Callers are responsible
// for supplying start < end; the range is not validated here.
func NewTimeRange(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Duration returns end minus start.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether a and b overlap. Two ranges overlap when a's start
// falls within [b.Start, b.End), a's end falls within (b.Start, b.End], or a
// fully contains b. Touching endpoints (a.End == b.Start) do not overlap.
func Overlaps(a, b TimeRange) bool {
	// a starts inside b
	if !a.Start.Before(b.Start) && a.Start.Before(b.End) {
		return true
	}
	// a ends inside b
	if a.End.After(b.Start) && !a.End.After(b.End) {
		return true
	}
	// a contains b
	if !a.Start.After(b.Start) && !a.End.Before(b.End) {
		return true
	}
	return false
}

// OverlapWindow returns the shared window [max(starts), min(ends)] of two
// ranges. Meaningful only when Overlaps(a, b) is true.
func OverlapWindow(a, b TimeRange) TimeRange {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return TimeRange{Start: start, End: end}
}
