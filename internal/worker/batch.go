package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"adclip/internal/ffmpeg"
)

// BatchResult is the outcome of a directory run: one entry per video,
// in discovery order.
type BatchResult struct {
	RunID  string
	Videos []VideoResult
}

// Succeeded counts videos that ran to completion (possibly with failed chunks).
func (b *BatchResult) Succeeded() int {
	n := 0
	for _, v := range b.Videos {
		if v.Err == nil {
			n++
		}
	}
	return n
}

// TotalClips sums the clips across all videos.
func (b *BatchResult) TotalClips() int {
	n := 0
	for _, v := range b.Videos {
		n += v.Clips
	}
	return n
}

// FindVideos lists the video files directly inside dir, sorted by name.
func FindVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read video directory: %w", err)
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ffmpeg.IsVideoExtension(filepath.Ext(e.Name())) {
			videos = append(videos, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(videos)
	return videos, nil
}

// ProcessDirectory analyzes every video in dir, up to VideoWorkers videos
// concurrently. A video's failure never aborts its siblings; each video's
// merge is serialized by the pipeline mutex, so the shared stores advance
// one video at a time.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string) (*BatchResult, error) {
	videos, err := FindVideos(dir)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("no video files found in %s", dir)
	}

	workers := p.opts.VideoWorkers
	if workers < 1 {
		workers = 1
	}

	slog.Info("starting batch",
		"run_id", p.runID,
		"videos", len(videos),
		"video_workers", workers,
		"chunk_workers", p.opts.ChunkWorkers)

	results := make([]VideoResult, len(videos))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, video := range videos {
		i, video := i, video
		g.Go(func() error {
			results[i] = p.ProcessVideo(ctx, video)
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{RunID: p.runID, Videos: results}
	p.logBatchSummary(batch)
	return batch, nil
}

// logBatchSummary reports per-video and per-chunk success/failure counts,
// keeping every error message verbatim for diagnostics.
func (p *Pipeline) logBatchSummary(batch *BatchResult) {
	slog.Info("batch complete",
		"run_id", batch.RunID,
		"videos_ok", batch.Succeeded(),
		"videos_total", len(batch.Videos),
		"total_clips", batch.TotalClips())

	for _, v := range batch.Videos {
		name := filepath.Base(v.Video)
		if v.Err != nil {
			slog.Error("video failed", "video", name, "err", v.Err)
			continue
		}
		attrs := []any{
			"video", name,
			"clips", v.Clips,
			"chunks_ok", v.ChunksTotal - v.ChunksFailed,
			"chunks_total", v.ChunksTotal,
		}
		if v.ReportPath != "" {
			attrs = append(attrs, "report", v.ReportPath)
		}
		if v.ChunksFailed > 0 {
			slog.Warn("video completed with failed chunks", attrs...)
		} else {
			slog.Info("video completed", attrs...)
		}
	}

	p.mu.Lock()
	videosAnalyzed := p.master.VideosAnalyzed
	clipsAnalyzed := p.master.TotalClipsAnalyzed
	p.mu.Unlock()

	slog.Info("knowledge stores updated",
		"store", p.opts.StorePath,
		"videos_analyzed", videosAnalyzed,
		"clips_analyzed", clipsAnalyzed,
		"ontology_report", reportPath(p.opts.StorePath, "ontology"),
		"playbook_report", reportPath(p.opts.StorePath, "playbook"))
}
