package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"adclip/internal/config"
	"adclip/internal/ffmpeg"
	"adclip/internal/worker"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <video-file-or-directory>",
	Short: "Analyze video ads and grow the ontology and playbook",
	Long: `Analyze one video file, or every video in a directory, into discrete
clips. Each video is split into chunks that are analyzed concurrently by the
Gemini API; results are reassembled in order and merged into the persistent
Master Ontology and Playbook. Directories are processed with bounded
video-level parallelism on top of the per-video chunk workers.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	outputDir    string
	model        string
	chunkSize    int
	chunkWorkers int
	videoWorkers int
	maxRetries   int
	rateLimit    int
	storePath    string
	skipPlaybook bool
	sequential   bool
)

func init() {
	defaults := config.Default()

	analyzeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for per-video reports (default: alongside each video)")
	analyzeCmd.Flags().StringVarP(&model, "model", "m", defaults.Model, "model: pro, flash, or a full Gemini model ID")
	analyzeCmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", defaults.ChunkDurationSec, "chunk duration in seconds")
	analyzeCmd.Flags().IntVarP(&chunkWorkers, "chunk-workers", "j", defaults.ChunkWorkers, "concurrent chunk analyses per video")
	analyzeCmd.Flags().IntVar(&videoWorkers, "video-workers", defaults.VideoWorkers, "concurrent videos when analyzing a directory")
	analyzeCmd.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "max attempts per chunk")
	analyzeCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.APIRateLimitPerMin, "API requests per minute")
	analyzeCmd.Flags().StringVar(&storePath, "store", defaults.StorePath, "path to the knowledge snapshot database")
	analyzeCmd.Flags().BoolVar(&skipPlaybook, "no-playbook", false, "skip playbook learning")
	analyzeCmd.Flags().BoolVar(&sequential, "sequential", false, "disable concurrent chunk processing")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	stat, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input not found: %s", args[0])
	}
	if !stat.IsDir() && !ffmpeg.IsVideoExtension(filepath.Ext(inputPath)) {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(inputPath))
	}

	if !ffmpeg.Available() {
		return fmt.Errorf("ffmpeg not found on PATH")
	}

	apiKey, err := config.APIKey()
	if err != nil {
		return err
	}

	defaults := config.Default()
	opts := worker.Options{
		OutputDir:        outputDir,
		Model:            config.ResolveModel(model),
		APIKey:           apiKey,
		ChunkDurationSec: chunkSize,
		ChunkWorkers:     chunkWorkers,
		VideoWorkers:     videoWorkers,
		MaxRetries:       maxRetries,
		RateLimitPerMin:  rateLimit,
		RequestTimeout:   defaults.RequestTimeout,
		MaxChunkSizeMB:   defaults.MaxChunkSizeMB,
		StorePath:        storePath,
		SkipPlaybook:     skipPlaybook,
		Sequential:       sequential,
	}

	// Graceful cancellation: stop scheduling new chunk calls on SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := worker.New(ctx, opts)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	if stat.IsDir() {
		if _, err := pipeline.ProcessDirectory(ctx, inputPath); err != nil {
			return err
		}
	} else {
		result := pipeline.ProcessVideo(ctx, inputPath)
		if result.Err != nil {
			return result.Err
		}
		slog.Info("done",
			"clips", result.Clips,
			"chunks_ok", result.ChunksTotal-result.ChunksFailed,
			"chunks_total", result.ChunksTotal,
			"report", result.ReportPath)
	}

	return nil
}
