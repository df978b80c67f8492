package cli

import (
	"context"
	"fmt"
	"strconv"

	"lrclab/internal/engine"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [index]",
	Short: "Merge a segment with its successor",
	Long: `Merge the segment at the given index (as shown by 'lrclab show') with
the one after it. The merged segment keeps the left segment's text when
present, otherwise the right one's.

Merging the last segment changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid segment index %q", args[0])
	}

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := requireTimeline(eng); err != nil {
			return false, err
		}
		if !eng.Timeline().Merge(index) {
			fmt.Printf("Nothing to merge: segment %d has no successor\n", index)
			return false, nil
		}
		fmt.Printf("Merged segment %d with its successor (%d segments)\n", index, eng.Timeline().Len())
		return true, nil
	})
}
