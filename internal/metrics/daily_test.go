package metrics

import "testing"

func TestComputeDaily_ClassifiesSegments(t *testing.T) {
	t.Parallel()

	segments := []Segment{
		{Start: 480, End: 870, CategoryKey: "care"},
		{Start: 870, End: 900, CategoryKey: "pause", Break: true},
	}

	result := ComputeDaily(segments)

	if result.WorkMinutes != 390 {
		t.Errorf("WorkMinutes = %d, want 390", result.WorkMinutes)
	}
	if result.BreakMinutes != 30 {
		t.Errorf("BreakMinutes = %d, want 30", result.BreakMinutes)
	}
	if result.DisposalMinutes != 0 {
		t.Errorf("DisposalMinutes = %d, want 0", result.DisposalMinutes)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if result.BreakDueMinute != nil {
		t.Errorf("BreakDueMinute = %d, want nil", *result.BreakDueMinute)
	}
	if result.CategoryTotals["care"] != 390 || result.CategoryTotals["pause"] != 30 {
		t.Errorf("CategoryTotals = %v", result.CategoryTotals)
	}
}

func TestComputeDaily_LongDayTriggersAllWarnings(t *testing.T) {
	t.Parallel()

	// 08:00-19:00 without any break.
	result := ComputeDaily([]Segment{{Start: 480, End: 1140, CategoryKey: "care"}})

	if result.WorkMinutes != 660 {
		t.Fatalf("WorkMinutes = %d, want 660", result.WorkMinutes)
	}
	want := []string{WarningBreak30Missing, WarningBreak45Missing, WarningMaxWorkExceeded}
	if len(result.Warnings) != len(want) {
		t.Fatalf("Warnings = %v, want %v", result.Warnings, want)
	}
	for i, text := range want {
		if result.Warnings[i] != text {
			t.Errorf("Warnings[%d] = %q, want %q", i, result.Warnings[i], text)
		}
	}
	if result.BreakDueMinute == nil || *result.BreakDueMinute != 840 {
		t.Fatalf("BreakDueMinute = %v, want 840", result.BreakDueMinute)
	}
}

func TestComputeDaily_BreakDueMarkerSkipsBreaksAndOrdersByStart(t *testing.T) {
	t.Parallel()

	// Segments supplied out of order with an interleaved break. Cumulative
	// work reaches 360 minutes inside the afternoon segment.
	segments := []Segment{
		{Start: 780, End: 1080, CategoryKey: "care"},
		{Start: 720, End: 750, CategoryKey: "pause", Break: true},
		{Start: 480, End: 720, CategoryKey: "care"},
	}

	result := ComputeDaily(segments)

	if result.WorkMinutes != 540 {
		t.Fatalf("WorkMinutes = %d, want 540", result.WorkMinutes)
	}
	// 240 minutes before the break, 120 more into the afternoon segment:
	// 13:00 + 120 = 15:00.
	if result.BreakDueMinute == nil || *result.BreakDueMinute != 900 {
		t.Fatalf("BreakDueMinute = %v, want 900", result.BreakDueMinute)
	}
}

func TestComputeDaily_DisposalAccumulation(t *testing.T) {
	t.Parallel()

	segments := []Segment{
		{Start: 480, End: 600, CategoryKey: "care"},
		{Start: 600, End: 690, CategoryKey: "disposal", Disposal: true},
	}

	result := ComputeDaily(segments)

	if result.DisposalMinutes != 90 {
		t.Errorf("DisposalMinutes = %d, want 90", result.DisposalMinutes)
	}
	if result.WorkMinutes != 210 {
		t.Errorf("WorkMinutes = %d, want 210", result.WorkMinutes)
	}
}

func TestComputeDaily_EmptyDay(t *testing.T) {
	t.Parallel()

	result := ComputeDaily(nil)
	if result.WorkMinutes != 0 || result.BreakMinutes != 0 || len(result.Warnings) != 0 {
		t.Errorf("unexpected result for empty day: %+v", result)
	}
}

func TestComputeDaily_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	segments := []Segment{
		{Start: 780, End: 1080, CategoryKey: "care"},
		{Start: 480, End: 720, CategoryKey: "care"},
	}

	ComputeDaily(segments)

	if segments[0].Start != 780 || segments[1].Start != 480 {
		t.Errorf("input segments reordered: %+v", segments)
	}
}
