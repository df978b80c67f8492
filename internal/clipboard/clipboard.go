package clipboard

import (
	"github.com/atotto/clipboard"
)

// ReadAll returns the current text content of the system clipboard.
func ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the system clipboard with text.
func WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
