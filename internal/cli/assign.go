package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lrclab/internal/engine"

	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign [segment-index] [entry-index|none]",
	Short: "Assign a library entry to a segment",
	Long: `Point a segment at a text entry, or clear the assignment with 'none'.
Indexes are the ones shown by 'lrclab show'.

Examples:
  lrclab assign 2 0
  lrclab assign 2 none`,
	Args: cobra.ExactArgs(2),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	segIndex, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid segment index %q", args[0])
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := requireTimeline(eng); err != nil {
			return false, err
		}

		segments := eng.Timeline().Segments()
		if segIndex < 0 || segIndex >= len(segments) {
			return false, fmt.Errorf("segment index %d out of range (0-%d)", segIndex, len(segments)-1)
		}

		textID := ""
		if !strings.EqualFold(args[1], "none") {
			entryIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return false, fmt.Errorf("invalid entry index %q", args[1])
			}
			entries := eng.Library().Entries()
			if entryIndex < 0 || entryIndex >= len(entries) {
				return false, fmt.Errorf("entry index %d out of range (0-%d)", entryIndex, len(entries)-1)
			}
			textID = entries[entryIndex].ID
		}

		if err := eng.AssignText(segments[segIndex].ID, textID); err != nil {
			return false, err
		}
		if textID == "" {
			fmt.Printf("Cleared text on segment %d\n", segIndex)
		} else {
			fmt.Printf("Assigned entry %s to segment %d\n", args[1], segIndex)
		}
		return true, nil
	})
}
