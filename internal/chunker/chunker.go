// Package chunker splits a source video into fixed-duration, non-overlapping
// time windows and materializes each window as a self-contained media file
// that can be sent to the analysis service in isolation.
package chunker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"adclip/internal/ffmpeg"
)

// ErrExtract marks a chunk whose media could not be materialized even after
// the re-encode fallback. The chunk is recorded as failed; siblings continue.
var ErrExtract = errors.New("chunk extraction failed")

// Chunk describes one time window of the source video.
type Chunk struct {
	Index       int
	StartOffset float64 // seconds from the start of the source
	Duration    float64
	Path        string

	// ExtractErr is set when materialization failed for this chunk only.
	ExtractErr error
}

// Plan computes the chunk windows for a source of totalDuration seconds.
// Every chunk is chunkDuration long except possibly the last, which covers
// the remainder. A zero-duration tail is never emitted.
func Plan(totalDuration, chunkDuration float64) []Chunk {
	if totalDuration <= 0 || chunkDuration <= 0 {
		return nil
	}

	const eps = 1e-9
	var chunks []Chunk
	current := 0.0

	for i := 0; current < totalDuration-eps; i++ {
		duration := chunkDuration
		if remaining := totalDuration - current; remaining < duration {
			duration = remaining
		}
		chunks = append(chunks, Chunk{
			Index:       i,
			StartOffset: current,
			Duration:    duration,
		})
		current += chunkDuration
	}

	return chunks
}

// Split probes the source, plans the chunk windows and extracts each window
// into dir. A probe failure aborts the whole video; a single chunk's
// extraction failure is recorded on that chunk and the rest proceed.
func Split(ctx context.Context, src string, chunkDurationSec int, dir string) ([]Chunk, error) {
	if chunkDurationSec <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %d", chunkDurationSec)
	}

	info, err := ffmpeg.Probe(ctx, src)
	if err != nil {
		return nil, err
	}

	chunks := Plan(info.Duration, float64(chunkDurationSec))
	slog.Info("splitting video",
		"video", filepath.Base(src),
		"duration_sec", fmt.Sprintf("%.1f", info.Duration),
		"chunks", len(chunks),
		"chunk_sec", chunkDurationSec)

	for i := range chunks {
		path := filepath.Join(dir, fmt.Sprintf("chunk_%03d.mp4", chunks[i].Index))
		if err := ffmpeg.ExtractSegment(ctx, src, path, chunks[i].StartOffset, chunks[i].Duration); err != nil {
			chunks[i].ExtractErr = fmt.Errorf("%w: chunk %d: %v", ErrExtract, chunks[i].Index, err)
			slog.Warn("chunk extraction failed",
				"video", filepath.Base(src),
				"chunk", chunks[i].Index,
				"err", err)
			continue
		}
		chunks[i].Path = path
	}

	return chunks, nil
}
