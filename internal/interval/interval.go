// Package interval implements the grid-snapped editing rules for shift
// segments. All functions are pure; applying a result to the owning shift is
// the caller's responsibility.
package interval

import (
	"errors"

	"github.com/example/shift-planner/internal/timeutil"
)

const (
	// Grid is the snapping resolution for segment endpoints.
	Grid = 15
	// MinDuration is the smallest legal segment length.
	MinDuration = 15
	// DefaultPlacementDuration is the length of a freshly placed segment.
	DefaultPlacementDuration = 30
	// DayStart and DayEnd bound the legal domain for segment endpoints.
	DayStart = 0
	DayEnd   = timeutil.MinutesPerDay
)

// ErrOverlap reports that a placement candidate collides with an existing
// sibling segment. Placement rejects instead of resolving; only interactive
// edits resolve.
var ErrOverlap = errors.New("interval: would overlap an existing segment")

// Interval is a half-open [Start, End) span in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps reports whether two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// EditMode selects which endpoints an interactive edit moves.
type EditMode int

const (
	// Move shifts both endpoints by the drag delta.
	Move EditMode = iota
	// ResizeStart moves only the start endpoint.
	ResizeStart
	// ResizeEnd moves only the end endpoint.
	ResizeEnd
)

// String returns a stable label for logging.
func (m EditMode) String() string {
	switch m {
	case Move:
		return "move"
	case ResizeStart:
		return "resize_start"
	case ResizeEnd:
		return "resize_end"
	default:
		return "unknown"
	}
}

// ResolveEdit computes the legal (start, end) pair for an interactive edit of
// current by delta minutes. Siblings are the other segments of the same
// employee and day; they are assumed pairwise non-overlapping and
// grid-aligned. The result never overlaps a sibling, is at least MinDuration
// long, and lies within [DayStart, DayEnd]. The operation cannot fail: when
// the requested position is blocked it degrades to the nearest legal
// interval.
func ResolveEdit(current Interval, mode EditMode, delta int, siblings []Interval) Interval {
	duration := current.Duration()
	if duration < MinDuration {
		duration = MinDuration
	}

	candidate := current
	switch mode {
	case Move:
		candidate.Start += delta
		candidate.End += delta
	case ResizeStart:
		candidate.Start += delta
	case ResizeEnd:
		candidate.End += delta
	}

	candidate.Start = snapNearest(candidate.Start)
	candidate.End = snapNearest(candidate.End)

	// Bound the candidate before collision resolution so that clamping at the
	// day edges cannot push the final result back into a sibling.
	candidate = clampCandidate(candidate, mode, duration)

	switch mode {
	case ResizeStart:
		candidate = resolveResizeStart(candidate, siblings)
	case ResizeEnd:
		candidate = resolveResizeEnd(candidate, siblings)
	default:
		candidate = resolveMove(candidate, duration, delta >= 0, current, siblings)
	}

	return clampResult(candidate, mode)
}

// resolveResizeEnd clips the moving end endpoint against siblings and keeps
// the start anchored.
func resolveResizeEnd(iv Interval, siblings []Interval) Interval {
	if iv.End-iv.Start < MinDuration {
		iv.End = iv.Start + MinDuration
	}
	for i, n := 0, len(siblings)+1; i < n; i++ {
		s, ok := overlapNearestStart(iv, siblings)
		if !ok {
			break
		}
		iv.End = s.Start
		if iv.End-iv.Start < MinDuration {
			iv.End = iv.Start + MinDuration
		}
	}
	return iv
}

// resolveResizeStart clips the moving start endpoint against siblings and
// keeps the end anchored.
func resolveResizeStart(iv Interval, siblings []Interval) Interval {
	if iv.End-iv.Start < MinDuration {
		iv.Start = iv.End - MinDuration
	}
	for i, n := 0, len(siblings)+1; i < n; i++ {
		s, ok := overlapNearestEnd(iv, siblings)
		if !ok {
			break
		}
		iv.Start = s.End
		if iv.End-iv.Start < MinDuration {
			iv.Start = iv.End - MinDuration
		}
	}
	return iv
}

// resolveMove clips the leading edge of a fixed-duration move against
// siblings in the direction of travel, re-deriving the trailing edge. When
// the segment lands in a gap too small for its duration the trailing edge is
// shrunk; when the gap cannot even hold a minimum-duration segment the move
// degrades to a minimum sliver at the nearest free gap.
func resolveMove(iv Interval, duration int, movingRight bool, original Interval, siblings []Interval) Interval {
	if movingRight {
		for i, n := 0, len(siblings)+1; i < n; i++ {
			s, ok := overlapNearestStart(iv, siblings)
			if !ok {
				break
			}
			iv.End = s.Start
			iv.Start = iv.End - duration
		}
		// Re-deriving the start may have pushed the trailing edge into a
		// sibling on the far side of the gap; shrink rather than travel back.
		for i, n := 0, len(siblings)+1; i < n; i++ {
			s, ok := overlapNearestEnd(iv, siblings)
			if !ok {
				break
			}
			iv.Start = s.End
		}
	} else {
		for i, n := 0, len(siblings)+1; i < n; i++ {
			s, ok := overlapNearestEnd(iv, siblings)
			if !ok {
				break
			}
			iv.Start = s.End
			iv.End = iv.Start + duration
		}
		for i, n := 0, len(siblings)+1; i < n; i++ {
			s, ok := overlapNearestStart(iv, siblings)
			if !ok {
				break
			}
			iv.End = s.Start
		}
	}

	if iv.End-iv.Start >= MinDuration && !overlapsAny(iv, siblings) {
		return iv
	}
	return nearestGapSliver(iv, original, siblings)
}

// nearestGapSliver places a minimum-duration interval at the edge of the free
// gap closest to the blocked candidate. The edited segment's original slot is
// itself free, so a suitable gap always exists for well-formed input; if none
// does, the original interval is returned unchanged.
func nearestGapSliver(blocked, original Interval, siblings []Interval) Interval {
	best := Interval{}
	bestDistance := -1
	for _, gap := range freeGaps(siblings) {
		if gap.Duration() < MinDuration {
			continue
		}
		var candidate Interval
		switch {
		case gap.End <= blocked.Start:
			candidate = Interval{Start: gap.End - MinDuration, End: gap.End}
		case gap.Start >= blocked.End:
			candidate = Interval{Start: gap.Start, End: gap.Start + MinDuration}
		default:
			candidate = Interval{Start: gap.Start, End: gap.Start + MinDuration}
		}
		distance := absInt(candidate.Start - blocked.Start)
		if bestDistance < 0 || distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	if bestDistance < 0 {
		return original
	}
	return best
}

// Place computes the insertion candidate for a click at clickedMinute: the
// click is floor-snapped to the grid and extended by the default duration.
// Unlike ResolveEdit, a colliding candidate is rejected with ErrOverlap
// rather than resolved.
func Place(clickedMinute int, siblings []Interval) (Interval, error) {
	start := snapFloor(clickedMinute)
	if start < DayStart {
		start = DayStart
	}
	if start > DayEnd-DefaultPlacementDuration {
		start = DayEnd - DefaultPlacementDuration
	}
	candidate := Interval{Start: start, End: start + DefaultPlacementDuration}
	if overlapsAny(candidate, siblings) {
		return Interval{}, ErrOverlap
	}
	return candidate, nil
}

// freeGaps returns the maximal sibling-free spans of the day in ascending
// order.
func freeGaps(siblings []Interval) []Interval {
	occupied := make([]Interval, 0, len(siblings))
	for _, s := range siblings {
		if s.End > s.Start {
			occupied = append(occupied, s)
		}
	}
	sortByStart(occupied)

	gaps := make([]Interval, 0, len(occupied)+1)
	cursor := DayStart
	for _, s := range occupied {
		if s.Start > cursor {
			gaps = append(gaps, Interval{Start: cursor, End: s.Start})
		}
		if s.End > cursor {
			cursor = s.End
		}
	}
	if cursor < DayEnd {
		gaps = append(gaps, Interval{Start: cursor, End: DayEnd})
	}
	return gaps
}

func sortByStart(intervals []Interval) {
	for i := 1; i < len(intervals); i++ {
		for j := i; j > 0 && intervals[j].Start < intervals[j-1].Start; j-- {
			intervals[j], intervals[j-1] = intervals[j-1], intervals[j]
		}
	}
}

// overlapNearestStart returns the overlapping sibling with the smallest
// start, i.e. the boundary a rightward-travelling edge meets first.
func overlapNearestStart(iv Interval, siblings []Interval) (Interval, bool) {
	found := false
	var best Interval
	for _, s := range siblings {
		if !iv.Overlaps(s) {
			continue
		}
		if !found || s.Start < best.Start {
			best = s
			found = true
		}
	}
	return best, found
}

// overlapNearestEnd returns the overlapping sibling with the largest end,
// i.e. the boundary a leftward-travelling edge meets first.
func overlapNearestEnd(iv Interval, siblings []Interval) (Interval, bool) {
	found := false
	var best Interval
	for _, s := range siblings {
		if !iv.Overlaps(s) {
			continue
		}
		if !found || s.End > best.End {
			best = s
			found = true
		}
	}
	return best, found
}

func overlapsAny(iv Interval, siblings []Interval) bool {
	for _, s := range siblings {
		if iv.Overlaps(s) {
			return true
		}
	}
	return false
}

// clampCandidate bounds the snapped candidate to the day ahead of collision
// resolution, preserving the fixed duration for moves.
func clampCandidate(iv Interval, mode EditMode, duration int) Interval {
	if mode == Move {
		if duration > DayEnd-DayStart {
			duration = DayEnd - DayStart
		}
		if iv.Start < DayStart {
			iv = Interval{Start: DayStart, End: DayStart + duration}
		}
		if iv.End > DayEnd {
			iv = Interval{Start: DayEnd - duration, End: DayEnd}
		}
		return iv
	}
	if iv.Start < DayStart {
		iv.Start = DayStart
	}
	if iv.End > DayEnd {
		iv.End = DayEnd
	}
	return iv
}

// clampResult bounds the resolved interval to the day while keeping the
// minimum duration intact.
func clampResult(iv Interval, mode EditMode) Interval {
	duration := iv.Duration()
	if duration < MinDuration {
		duration = MinDuration
	}
	if duration > DayEnd-DayStart {
		duration = DayEnd - DayStart
	}

	if mode == Move {
		if iv.Start < DayStart {
			iv.Start = DayStart
			iv.End = DayStart + duration
		}
		if iv.End > DayEnd {
			iv.End = DayEnd
			iv.Start = DayEnd - duration
		}
		return iv
	}

	if iv.Start < DayStart {
		iv.Start = DayStart
	}
	if iv.End > DayEnd {
		iv.End = DayEnd
	}
	if iv.End-iv.Start < MinDuration {
		if mode == ResizeStart {
			iv.Start = iv.End - MinDuration
			if iv.Start < DayStart {
				iv.Start = DayStart
				iv.End = DayStart + MinDuration
			}
		} else {
			iv.End = iv.Start + MinDuration
			if iv.End > DayEnd {
				iv.End = DayEnd
				iv.Start = DayEnd - MinDuration
			}
		}
	}
	return iv
}

// snapNearest rounds to the closest grid line, away from zero on ties.
func snapNearest(minutes int) int {
	offset := Grid / 2
	if minutes < 0 {
		return -(((-minutes) + offset) / Grid) * Grid
	}
	return ((minutes + offset) / Grid) * Grid
}

// snapFloor rounds down to the enclosing grid line.
func snapFloor(minutes int) int {
	if minutes < 0 {
		return -(((-minutes) + Grid - 1) / Grid) * Grid
	}
	return (minutes / Grid) * Grid
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
