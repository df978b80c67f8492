package cli

import (
	"lrclab/internal/config"
	"lrclab/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	projectPath string
	logger      *logging.Logger
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lrclab",
	Short: "Timeline editor for synchronized LRC lyrics",
	Long: `Lrclab divides a video's timeline into contiguous segments, attaches
reusable text entries to them, and reads/writes the result as a
time-coded LRC file.

State lives in a project file; every command loads it, applies one
edit, and saves it back.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)

		cfg = config.Default()
		if path, err := config.DefaultPath(); err == nil {
			if loaded, err := config.Load(path); err == nil {
				cfg = loaded
			} else {
				logger.Warnw("Ignoring unreadable config file",
					"path", path,
					"error", err,
				)
			}
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&projectPath, "project", "p", "", "Project file path")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}

// project file for this invocation: the --project flag when given,
// otherwise the configured default
func resolveProject() string {
	if projectPath != "" {
		return projectPath
	}
	return cfg.DefaultProject
}
