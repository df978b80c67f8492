package cli

import (
	"context"
	"fmt"

	"lrclab/internal/engine"
	"lrclab/internal/lrc"

	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [time]",
	Short: "Split the segment containing a point in time",
	Long: `Split the segment strictly containing the given time into two. The
left half keeps its assigned text; the right half starts unassigned.

Splitting exactly on an existing boundary, or outside the timeline,
changes nothing.

Examples:
  lrclab split 63.4
  lrclab split 1:03.40`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	at, err := parseTimeSpec(args[0])
	if err != nil {
		return err
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := requireTimeline(eng); err != nil {
			return false, err
		}
		if !eng.Timeline().Split(at) {
			fmt.Printf("Nothing to split at %s: point is on a boundary or outside the timeline\n",
				lrc.FormatTimestamp(at))
			return false, nil
		}
		fmt.Printf("Split at %s (%d segments)\n", lrc.FormatTimestamp(at), eng.Timeline().Len())
		return true, nil
	})
}
