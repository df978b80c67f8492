package timeline

import (
	"testing"
)

func TestNewTimeline(t *testing.T) {
	tl, err := New(120)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	segments := tl.Segments()
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Start != 0 || segments[0].End != 120 {
		t.Errorf("expected [0, 120), got [%g, %g)", segments[0].Start, segments[0].End)
	}
	if segments[0].TextRef != "" {
		t.Errorf("expected no text ref, got %q", segments[0].TextRef)
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("fresh timeline is invalid: %v", err)
	}
}

func TestNewRejectsNonPositiveDuration(t *testing.T) {
	for _, duration := range []float64{0, -1, -0.001} {
		if _, err := New(duration); err == nil {
			t.Errorf("New(%g) succeeded, want error", duration)
		}
	}
}

func TestSplitInheritsTextOnLeft(t *testing.T) {
	tl, err := New(100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	segments := tl.Segments()
	tl.AssignText(segments[0].ID, "entry-1")

	if !tl.Split(40) {
		t.Fatal("Split(40) reported no-op")
	}

	segments = tl.Segments()
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Start != 0 || segments[0].End != 40 {
		t.Errorf("left segment spans [%g, %g), want [0, 40)", segments[0].Start, segments[0].End)
	}
	if segments[1].Start != 40 || segments[1].End != 100 {
		t.Errorf("right segment spans [%g, %g), want [40, 100)", segments[1].Start, segments[1].End)
	}
	if segments[0].TextRef != "entry-1" {
		t.Errorf("left segment lost text ref, got %q", segments[0].TextRef)
	}
	if segments[1].TextRef != "" {
		t.Errorf("right segment gained text ref %q", segments[1].TextRef)
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("timeline invalid after split: %v", err)
	}
}

func TestSplitNoOps(t *testing.T) {
	tl, err := New(100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !tl.Split(50) {
		t.Fatal("interior split failed")
	}

	tests := []struct {
		name string
		at   float64
	}{
		{"start boundary", 0},
		{"interior boundary", 50},
		{"end boundary", 100},
		{"negative", -3},
		{"past the end", 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tl.Segments()
			if tl.Split(tt.at) {
				t.Errorf("Split(%g) reported success, want no-op", tt.at)
			}
			after := tl.Segments()
			if len(before) != len(after) {
				t.Fatalf("segment count changed from %d to %d", len(before), len(after))
			}
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("segment %d changed from %+v to %+v", i, before[i], after[i])
				}
			}
		})
	}
}

func TestMergeTextTieBreak(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  string
	}{
		{"both assigned keeps left", "entry-a", "entry-b", "entry-a"},
		{"left only", "entry-a", "", "entry-a"},
		{"right only", "", "entry-b", "entry-b"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := New(100)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !tl.Split(50) {
				t.Fatal("split failed")
			}

			segments := tl.Segments()
			tl.AssignText(segments[0].ID, tt.left)
			tl.AssignText(segments[1].ID, tt.right)

			if !tl.Merge(0) {
				t.Fatal("Merge(0) reported no-op")
			}

			segments = tl.Segments()
			if len(segments) != 1 {
				t.Fatalf("expected 1 segment after merge, got %d", len(segments))
			}
			if segments[0].Start != 0 || segments[0].End != 100 {
				t.Errorf("merged segment spans [%g, %g), want [0, 100)", segments[0].Start, segments[0].End)
			}
			if segments[0].TextRef != tt.want {
				t.Errorf("merged text ref = %q, want %q", segments[0].TextRef, tt.want)
			}
		})
	}
}

func TestMergeNoOps(t *testing.T) {
	tl, err := New(100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tl.Split(50)

	for _, index := range []int{-1, 1, 2, 10} {
		if tl.Merge(index) {
			t.Errorf("Merge(%d) reported success, want no-op", index)
		}
	}
	if tl.Len() != 2 {
		t.Errorf("segment count changed to %d", tl.Len())
	}
}

func TestPartitionInvariantUnderOperations(t *testing.T) {
	tl, err := New(300)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	splits := []float64{120, 60, 180, 90, 240, 30, 150, 270, 45, 210}
	for _, at := range splits {
		tl.Split(at)
		if err := tl.Validate(); err != nil {
			t.Fatalf("invalid after Split(%g): %v", at, err)
		}
	}
	if tl.Len() != len(splits)+1 {
		t.Fatalf("expected %d segments, got %d", len(splits)+1, tl.Len())
	}

	merges := []int{0, 5, 3, 3, 0, 100, -1}
	for _, index := range merges {
		tl.Merge(index)
		if err := tl.Validate(); err != nil {
			t.Fatalf("invalid after Merge(%d): %v", index, err)
		}
	}

	// collapse back down to a single segment
	for tl.Merge(0) {
	}
	if err := tl.Validate(); err != nil {
		t.Fatalf("invalid after collapsing: %v", err)
	}
	segments := tl.Segments()
	if len(segments) != 1 || segments[0].Start != 0 || segments[0].End != 300 {
		t.Errorf("expected single [0, 300) segment, got %+v", segments)
	}
}

func TestActiveSegmentAt(t *testing.T) {
	tl, err := New(100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tl.Split(40)

	tests := []struct {
		name      string
		at        float64
		wantStart float64
		wantOK    bool
	}{
		{"start of first", 0, 0, true},
		{"inside first", 39.9, 0, true},
		{"boundary belongs to right", 40, 40, true},
		{"inside second", 99.99, 40, true},
		{"exact end matches nothing", 100, 0, false},
		{"past the end", 200, 0, false},
		{"before the start", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := tl.ActiveSegmentAt(tt.at)
			if ok != tt.wantOK {
				t.Fatalf("ActiveSegmentAt(%g) ok = %v, want %v", tt.at, ok, tt.wantOK)
			}
			if ok && seg.Start != tt.wantStart {
				t.Errorf("ActiveSegmentAt(%g) start = %g, want %g", tt.at, seg.Start, tt.wantStart)
			}
		})
	}
}

func TestClearReferencesTo(t *testing.T) {
	tl, err := New(100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tl.Split(25)
	tl.Split(50)
	tl.Split(75)

	segments := tl.Segments()
	tl.AssignText(segments[0].ID, "shared")
	tl.AssignText(segments[1].ID, "other")
	tl.AssignText(segments[2].ID, "shared")

	if cleared := tl.ClearReferencesTo("shared"); cleared != 2 {
		t.Errorf("cleared %d references, want 2", cleared)
	}

	segments = tl.Segments()
	for i, seg := range segments {
		if seg.TextRef == "shared" {
			t.Errorf("segment %d still references deleted entry", i)
		}
	}
	if segments[1].TextRef != "other" {
		t.Errorf("unrelated reference changed to %q", segments[1].TextRef)
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("timeline invalid after clearing: %v", err)
	}
}

func TestRestoreRejectsBrokenPartitions(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		segments []Segment
	}{
		{"no segments", 100, nil},
		{"first does not start at zero", 100, []Segment{
			{ID: "a", Start: 5, End: 100},
		}},
		{"last does not reach duration", 100, []Segment{
			{ID: "a", Start: 0, End: 90},
		}},
		{"gap between segments", 100, []Segment{
			{ID: "a", Start: 0, End: 40},
			{ID: "b", Start: 50, End: 100},
		}},
		{"overlapping segments", 100, []Segment{
			{ID: "a", Start: 0, End: 60},
			{ID: "b", Start: 40, End: 100},
		}},
		{"empty span", 100, []Segment{
			{ID: "a", Start: 0, End: 0},
			{ID: "b", Start: 0, End: 100},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Restore(tt.duration, tt.segments); err == nil {
				t.Error("Restore succeeded, want error")
			}
		})
	}
}

func TestRestoreAcceptsValidPartition(t *testing.T) {
	segments := []Segment{
		{ID: "a", Start: 0, End: 30, TextRef: "x"},
		{ID: "b", Start: 30, End: 100},
	}
	tl, err := Restore(100, segments)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if tl.Len() != 2 {
		t.Errorf("expected 2 segments, got %d", tl.Len())
	}
	if got := tl.Segments()[0].TextRef; got != "x" {
		t.Errorf("text ref = %q, want %q", got, "x")
	}
}
