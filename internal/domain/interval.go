package domain

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Strict inequalities on both sides: intervals that merely touch at a
// boundary (one ends exactly where the other starts) do not overlap, so
// back-to-back appointments pack without gaps.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// OverlapsAny reports whether the interval intersects any of the given ones.
func (i Interval) OverlapsAny(others []Interval) bool {
	for _, other := range others {
		if i.Overlaps(other) {
			return true
		}
	}
	return false
}
