package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "adclip",
	Short: "Analyze video ads into a clip ontology and script-to-clip playbook",
	Long: `Adclip decomposes video advertisements into discrete visual clips using
the Gemini video understanding API, then folds every clip into two long-lived
knowledge stores: a frequency-weighted Master Ontology of visual, emotional
and functional clip attributes, and a Playbook of script-to-clip examples.

Videos are split into chunks that are analyzed concurrently; results are
reassembled into one globally ordered clip sequence before aggregation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
