package engine

import (
	"errors"
	"fmt"

	"lrclab/internal/library"
	"lrclab/internal/lrc"
	"lrclab/internal/timeline"
)

// returned by operations that need a loaded video duration
var ErrNoTimeline = errors.New("no video loaded")

// Engine owns the segment timeline and the text library and keeps the
// two consistent: segment text references always name a live library
// entry, and imports replace both collections together or not at all.
type Engine struct {
	timeline *timeline.Timeline
	library  *library.Library
}

func New() *Engine {
	return &Engine{library: library.New()}
}

// rebuilds an engine from previously stored state
func Restore(tl *timeline.Timeline, lib *library.Library) *Engine {
	if lib == nil {
		lib = library.New()
	}
	return &Engine{timeline: tl, library: lib}
}

// resets the timeline to a single unassigned segment spanning the new
// video; the text library is kept
func (e *Engine) LoadVideo(duration float64) error {
	tl, err := timeline.New(duration)
	if err != nil {
		return err
	}
	e.timeline = tl
	return nil
}

// Timeline returns the current timeline, nil until a video is loaded.
func (e *Engine) Timeline() *timeline.Timeline {
	return e.timeline
}

func (e *Engine) Library() *library.Library {
	return e.library
}

// sets a segment's text reference after checking the entry exists;
// textID may be empty to clear the assignment. An unknown segment id is
// a silent no-op, matching stale-selection behavior elsewhere.
func (e *Engine) AssignText(segmentID, textID string) error {
	if e.timeline == nil {
		return ErrNoTimeline
	}
	if textID != "" {
		if _, ok := e.library.Get(textID); !ok {
			return fmt.Errorf("unknown text entry %s", textID)
		}
	}
	e.timeline.AssignText(segmentID, textID)
	return nil
}

// removes a library entry and clears every segment reference to it;
// returns how many segments were cleared
func (e *Engine) DeleteText(id string) (int, bool) {
	if !e.library.Delete(id) {
		return 0, false
	}
	if e.timeline == nil {
		return 0, true
	}
	return e.timeline.ClearReferencesTo(id), true
}

// serializes the current state as an LRC document
func (e *Engine) ExportLRC(trailingNewline bool) (string, error) {
	if e.timeline == nil {
		return "", ErrNoTimeline
	}
	return lrc.Encode(e.timeline.Segments(), e.library, trailingNewline), nil
}

// decodes raw LRC text and installs the result, replacing the previous
// library and timeline wholesale. Any decode failure leaves the engine
// untouched.
func (e *Engine) ImportLRC(raw string) error {
	duration := 0.0
	if e.timeline != nil {
		duration = e.timeline.Duration()
	}

	result, err := lrc.Decode(raw, duration)
	if err != nil {
		return err
	}

	e.library = result.Library
	if result.Timeline != nil {
		e.timeline = result.Timeline
	}
	return nil
}
