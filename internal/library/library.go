package library

import (
	"strings"

	"github.com/google/uuid"
)

// represents a reusable piece of text referenced by segments
type Entry struct {
	ID   string
	Text string
}

// ordered collection of text entries
type Library struct {
	entries []Entry
}

func New() *Library {
	return &Library{}
}

// rebuilds a library from previously stored entries, preserving ids and order
func Restore(entries []Entry) *Library {
	return &Library{entries: append([]Entry(nil), entries...)}
}

// appends a new entry and returns its id
func (l *Library) Add(text string) string {
	id := uuid.NewString()
	l.entries = append(l.entries, Entry{ID: id, Text: text})
	return id
}

// replaces the entry's text in place; unknown ids are a no-op
func (l *Library) Update(id, text string) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Text = text
			return true
		}
	}
	return false
}

// removes the entry; unknown ids are a no-op. Callers owning a timeline
// must clear segment references to id afterwards.
func (l *Library) Delete(id string) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// moves the entry at from to position to; ids are unaffected
func (l *Library) Reorder(from, to int) bool {
	if from < 0 || from >= len(l.entries) || to < 0 || to >= len(l.entries) {
		return false
	}
	if from == to {
		return true
	}
	entry := l.entries[from]
	l.entries = append(l.entries[:from], l.entries[from+1:]...)
	l.entries = append(l.entries[:to], append([]Entry{entry}, l.entries[to:]...)...)
	return true
}

// splits raw on line breaks, trims each line, drops empties, and appends
// one entry per remaining line in order; returns the new ids
func (l *Library) BulkAdd(raw string) []string {
	var ids []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, l.Add(line))
	}
	return ids
}

func (l *Library) Get(id string) (Entry, bool) {
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// returns a copy of the entries in library order
func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Library) Len() int {
	return len(l.entries)
}
