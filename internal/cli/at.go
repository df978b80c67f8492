package cli

import (
	"context"
	"fmt"

	"lrclab/internal/engine"
	"lrclab/internal/lrc"

	"github.com/spf13/cobra"
)

var atCmd = &cobra.Command{
	Use:   "at [time]",
	Short: "Show the segment active at a point in time",
	Long: `Print the segment covering the given playback position, the way a
player following the timeline would resolve it. The exact end of the
video is past every segment.`,
	Args: cobra.ExactArgs(1),
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)
}

func runAt(cmd *cobra.Command, args []string) error {
	at, err := parseTimeSpec(args[0])
	if err != nil {
		return err
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := requireTimeline(eng); err != nil {
			return false, err
		}

		seg, ok := eng.Timeline().ActiveSegmentAt(at)
		if !ok {
			fmt.Printf("No segment at %s (past the end of the timeline)\n", lrc.FormatTimestamp(at))
			return false, nil
		}

		text := ""
		if seg.TextRef != "" {
			if entry, found := eng.Library().Get(seg.TextRef); found {
				text = entry.Text
			}
		}
		fmt.Printf("[%s - %s] %s\n",
			lrc.FormatTimestamp(seg.Start),
			lrc.FormatTimestamp(seg.End),
			text,
		)
		return false, nil
	})
}
