package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lrclab/internal/engine"
	"lrclab/internal/lrc"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file.lrc]",
	Short: "Replace the project state from an LRC file",
	Long: `Parse an LRC file and rebuild the timeline and library from its
timestamps. The previous state is replaced wholesale; when the file
cannot be used (no entries, or a timestamp past the video's end) the
project is left untouched.

Examples:
  lrclab import song.lrc`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	logger.Infow("Importing LRC file",
		"path", args[0],
		"bytes", len(data),
	)

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := eng.ImportLRC(string(data)); err != nil {
			var mismatch *lrc.DurationMismatchError
			switch {
			case errors.As(err, &mismatch):
				return false, fmt.Errorf("import rejected: %w", mismatch)
			case errors.Is(err, lrc.ErrNoEntries):
				return false, fmt.Errorf("import rejected: %s contains %w", args[0], err)
			default:
				return false, err
			}
		}

		if tl := eng.Timeline(); tl != nil {
			fmt.Printf("Imported %d segments and %d text entries from %s\n",
				tl.Len(), eng.Library().Len(), args[0])
		} else {
			fmt.Printf("Imported %d text entries from %s (no video loaded, timeline unchanged)\n",
				eng.Library().Len(), args[0])
		}
		return true, nil
	})
}
