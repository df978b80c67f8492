package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// represents a time-bounded slice of the video timeline
type Segment struct {
	ID      string
	Start   float64 // seconds, inclusive
	End     float64 // seconds, exclusive
	TextRef string  // library entry id, empty when unassigned
}

// ordered partition of [0, duration) into contiguous segments
type Timeline struct {
	duration float64
	segments []Segment
}

// creates a timeline with a single unassigned segment spanning [0, duration)
func New(duration float64) (*Timeline, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %g", duration)
	}
	return &Timeline{
		duration: duration,
		segments: []Segment{{ID: uuid.NewString(), Start: 0, End: duration}},
	}, nil
}

// rebuilds a timeline from stored segments, rejecting anything that is not
// an exact partition of [0, duration)
func Restore(duration float64, segments []Segment) (*Timeline, error) {
	t := &Timeline{
		duration: duration,
		segments: append([]Segment(nil), segments...),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Timeline) Duration() float64 {
	return t.duration
}

// returns a copy of the segment list in timeline order
func (t *Timeline) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

func (t *Timeline) Len() int {
	return len(t.segments)
}

// splits the segment strictly containing at into two. The left half keeps
// the original text reference, the right half starts unassigned. Splitting
// exactly on a boundary or outside the timeline is a no-op.
func (t *Timeline) Split(at float64) bool {
	for i, seg := range t.segments {
		if seg.Start < at && at < seg.End {
			left := Segment{ID: uuid.NewString(), Start: seg.Start, End: at, TextRef: seg.TextRef}
			right := Segment{ID: uuid.NewString(), Start: at, End: seg.End}

			t.segments = append(t.segments[:i], append([]Segment{left, right}, t.segments[i+1:]...)...)
			return true
		}
	}
	return false
}

// merges the segment at index with its immediate successor. The merged
// segment keeps the left text reference when present, otherwise the right
// one. Merging the last segment is a no-op.
func (t *Timeline) Merge(index int) bool {
	if index < 0 || index >= len(t.segments)-1 {
		return false
	}

	left := t.segments[index]
	right := t.segments[index+1]

	textRef := left.TextRef
	if textRef == "" {
		textRef = right.TextRef
	}

	merged := Segment{ID: uuid.NewString(), Start: left.Start, End: right.End, TextRef: textRef}
	t.segments = append(t.segments[:index], append([]Segment{merged}, t.segments[index+2:]...)...)
	return true
}

// sets the text reference of the named segment; textID may be empty to
// clear it. An unknown segment id is a no-op.
func (t *Timeline) AssignText(segmentID, textID string) bool {
	for i := range t.segments {
		if t.segments[i].ID == segmentID {
			t.segments[i].TextRef = textID
			return true
		}
	}
	return false
}

// returns the segment covering at, half-open: Start <= at < End. The exact
// end of the timeline matches no segment.
func (t *Timeline) ActiveSegmentAt(at float64) (Segment, bool) {
	for _, seg := range t.segments {
		if seg.Start <= at && at < seg.End {
			return seg, true
		}
	}
	return Segment{}, false
}

// clears every text reference pointing at textID; returns how many
// segments were touched
func (t *Timeline) ClearReferencesTo(textID string) int {
	if textID == "" {
		return 0
	}
	cleared := 0
	for i := range t.segments {
		if t.segments[i].TextRef == textID {
			t.segments[i].TextRef = ""
			cleared++
		}
	}
	return cleared
}

// checks the partition invariant: segments are ordered, contiguous, start
// at zero, end at the duration, and each spans a positive interval
func (t *Timeline) Validate() error {
	if t.duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", t.duration)
	}
	if len(t.segments) == 0 {
		return fmt.Errorf("timeline has no segments")
	}
	if first := t.segments[0]; first.Start != 0 {
		return fmt.Errorf("first segment starts at %g, want 0", first.Start)
	}
	if last := t.segments[len(t.segments)-1]; last.End != t.duration {
		return fmt.Errorf("last segment ends at %g, want %g", last.End, t.duration)
	}
	for i, seg := range t.segments {
		if seg.Start >= seg.End {
			return fmt.Errorf("segment %d spans [%g, %g), want start < end", i, seg.Start, seg.End)
		}
		if i > 0 && t.segments[i-1].End != seg.Start {
			return fmt.Errorf(
				"gap between segment %d ending at %g and segment %d starting at %g",
				i-1, t.segments[i-1].End, i, seg.Start,
			)
		}
	}
	return nil
}
