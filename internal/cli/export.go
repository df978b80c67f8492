package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lrclab/internal/engine"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the project as an LRC file",
	Long: `Serialize the timeline as LRC text, one line per segment in order.
Unassigned segments export with an empty text suffix.

Writes to --output when given, stdout otherwise.

Examples:
  lrclab export
  lrclab export -o song.lrc`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	return withProject(func(ctx context.Context, eng *engine.Engine) (bool, error) {
		if err := requireTimeline(eng); err != nil {
			return false, err
		}

		doc, err := eng.ExportLRC(cfg.Export.TrailingNewline)
		if err != nil {
			return false, err
		}

		if outputPath == "" {
			fmt.Print(doc)
			return false, nil
		}

		logger.Infow("Exporting LRC file",
			"path", outputPath,
			"segments", eng.Timeline().Len(),
		)

		if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		absOutput, _ := filepath.Abs(outputPath)
		fmt.Printf("Exported %d segments: %s\n", eng.Timeline().Len(), absOutput)
		return false, nil
	})
}
