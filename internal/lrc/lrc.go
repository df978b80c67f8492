package lrc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"lrclab/internal/library"
	"lrclab/internal/timeline"
)

// times within this window are treated as equal when attaching decoded
// text to segment starts, absorbing float drift across an encode/decode
// round trip
const matchTolerance = 0.01

// matches one bracketed timestamp tag: [minutes:seconds], where seconds
// may carry a fraction separated by either '.' or ':'
var tagRegex = regexp.MustCompile(`\[(\d+):(\d+(?:[.:]\d+)?)\]`)

// a single timed line recovered from an LRC document
type Entry struct {
	Time float64
	Text string
}

// the outcome of decoding an LRC document. Timeline is nil when the video
// duration was unknown at decode time.
type Result struct {
	Entries  []Entry
	Library  *library.Library
	Timeline *timeline.Timeline
}

// reported when the document's latest timestamp lies past the end of the
// loaded video
type DurationMismatchError struct {
	MaxTimestamp float64
	Duration     float64
}

func (e *DurationMismatchError) Error() string {
	return fmt.Sprintf(
		"lyric timestamp %s exceeds video duration %s",
		FormatTimestamp(e.MaxTimestamp),
		FormatTimestamp(e.Duration),
	)
}

// reported when decoding found nothing usable
var ErrNoEntries = errors.New("no usable lyric entries found")

// formats seconds as MM:SS.ss. Minutes are zero-padded to two digits and
// grow naturally past 99.
func FormatTimestamp(seconds float64) string {
	minutes := int(seconds / 60)
	remainder := seconds - float64(minutes)*60
	return fmt.Sprintf("%02d:%05.2f", minutes, remainder)
}

// serializes the segment sequence as an LRC document, one line per
// segment in timeline order. Segments without an assigned entry encode
// with an empty text suffix.
func Encode(segments []timeline.Segment, lib *library.Library, trailingNewline bool) string {
	var sb strings.Builder
	for i, seg := range segments {
		if i > 0 {
			sb.WriteString("\n")
		}
		text := ""
		if seg.TextRef != "" {
			if entry, ok := lib.Get(seg.TextRef); ok {
				text = entry.Text
			}
		}
		sb.WriteString("[")
		sb.WriteString(FormatTimestamp(seg.Start))
		sb.WriteString("]")
		sb.WriteString(text)
	}
	if trailingNewline && len(segments) > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// parses raw LRC text into a fresh library and, when duration is known
// (> 0), a fresh timeline partitioned at the decoded timestamps. Lines
// without a recognizable tag are ignored; a line carrying several tags
// yields one entry per tag, all sharing the line's stripped text.
func Decode(raw string, duration float64) (*Result, error) {
	entries := extractEntries(raw)

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})

	if duration > 0 {
		max := entries[len(entries)-1].Time
		if max > duration {
			return nil, &DurationMismatchError{MaxTimestamp: max, Duration: duration}
		}
	}

	lib := library.New()
	entryIDs := make([]string, len(entries))
	for i, entry := range entries {
		if entry.Text != "" {
			entryIDs[i] = lib.Add(entry.Text)
		}
	}

	result := &Result{Entries: entries, Library: lib}

	if duration > 0 {
		tl, err := buildTimeline(duration, entries, entryIDs)
		if err != nil {
			return nil, err
		}
		result.Timeline = tl
	}

	return result, nil
}

// pulls timed entries out of raw text, dropping zero-time entries with no
// text and deduplicating exact (time, text) pairs. Each tag's text is
// whatever follows it on the line with any remaining tags stripped, so a
// run of leading tags shares the line's text while a trailing tag with
// nothing after it yields an empty one.
func extractEntries(raw string) []Entry {
	var entries []Entry
	seen := make(map[Entry]bool)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := tagRegex.FindAllStringSubmatchIndex(line, -1)
		for _, m := range matches {
			seconds, err := parseTag(line[m[2]:m[3]], line[m[4]:m[5]])
			if err != nil {
				continue
			}
			text := strings.TrimSpace(tagRegex.ReplaceAllString(line[m[1]:], ""))
			if text == "" && seconds <= 0 {
				continue
			}
			entry := Entry{Time: seconds, Text: text}
			if seen[entry] {
				continue
			}
			seen[entry] = true
			entries = append(entries, entry)
		}
	}

	return entries
}

// converts one tag's captured fields into seconds. The sub-second
// separator may be ':' in the wild; normalize it to '.' before parsing.
func parseTag(minutesField, secondsField string) (float64, error) {
	minutes, err := strconv.Atoi(minutesField)
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(strings.Replace(secondsField, ":", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	return float64(minutes)*60 + seconds, nil
}

// partitions [0, duration) at every interior entry time and attaches
// library ids to the segments whose start matches a texted entry
func buildTimeline(duration float64, entries []Entry, entryIDs []string) (*timeline.Timeline, error) {
	boundaries := []float64{0}
	for _, entry := range entries {
		if entry.Time > 0 && entry.Time < duration {
			last := boundaries[len(boundaries)-1]
			if entry.Time != last {
				boundaries = append(boundaries, entry.Time)
			}
		}
	}
	boundaries = append(boundaries, duration)

	segments := make([]timeline.Segment, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		seg := timeline.Segment{
			ID:    uuid.NewString(),
			Start: boundaries[i],
			End:   boundaries[i+1],
		}
		for j, entry := range entries {
			if entryIDs[j] != "" && math.Abs(entry.Time-seg.Start) <= matchTolerance {
				seg.TextRef = entryIDs[j]
				break
			}
		}
		segments = append(segments, seg)
	}

	return timeline.Restore(duration, segments)
}
