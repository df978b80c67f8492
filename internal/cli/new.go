package cli

import (
	"context"
	"errors"
	"fmt"

	"lrclab/internal/engine"
	"lrclab/internal/lrc"
	"lrclab/internal/project"
	"lrclab/internal/video"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a project for a video",
	Long: `Create (or reset) a project with a single unassigned segment spanning
the whole video.

The duration comes from probing a video file with ffprobe, or directly
from --duration when no file is at hand.

Examples:
  lrclab new --video song.mp4
  lrclab new --duration 215.5 -p album/track01.lrclab`,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("video", "", "Video file to probe for duration")
	newCmd.Flags().Float64("duration", 0, "Video duration in seconds (skips probing)")
}

func runNew(cmd *cobra.Command, args []string) error {
	videoPath, _ := cmd.Flags().GetString("video")
	duration, _ := cmd.Flags().GetFloat64("duration")

	if videoPath == "" && duration <= 0 {
		return fmt.Errorf("either --video or a positive --duration is required")
	}

	if videoPath != "" {
		info, err := video.Probe(videoPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		duration = info.Seconds()
		logger.Infow("Probed video",
			"path", videoPath,
			"duration", lrc.FormatTimestamp(duration),
			"codec", info.Codec,
		)
	}

	ctx := context.Background()
	store, err := project.Open(resolveProject())
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	// loading a video resets the timeline but keeps any existing library
	eng, _, err := store.Load(ctx)
	if errors.Is(err, project.ErrNotInitialized) {
		eng = engine.New()
	} else if err != nil {
		return err
	}
	if err := eng.LoadVideo(duration); err != nil {
		return err
	}

	if err := store.Save(ctx, videoPath, eng); err != nil {
		return err
	}

	fmt.Printf("Project created: %s (duration %s)\n", store.Path(), lrc.FormatTimestamp(duration))
	return nil
}
