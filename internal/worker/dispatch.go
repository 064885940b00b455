package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"adclip/internal/chunker"
)

// dispatchChunks analyzes every chunk with bounded parallelism and returns
// one result per chunk. Workers never return an error to the group: every
// outcome, including timeouts and malformed responses, becomes a tagged
// per-chunk result, so one chunk's failure cannot cancel its siblings.
func (p *Pipeline) dispatchChunks(ctx context.Context, chunks []chunker.Chunk, hints string) []ChunkResult {
	workers := p.opts.ChunkWorkers
	if p.opts.Sequential || workers < 1 {
		workers = 1
	}

	slog.Info("dispatching chunks",
		"chunks", len(chunks),
		"workers", workers,
		"rate_limit_rpm", p.opts.RateLimitPerMin)

	results := make([]ChunkResult, len(chunks))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range chunks {
		chunk := chunks[i]
		g.Go(func() error {
			results[chunk.Index] = p.analyzeChunk(ctx, chunk, hints)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// analyzeChunk runs one chunk through the analyzer with rate limiting and
// retries, converting any terminal error into a failure result.
func (p *Pipeline) analyzeChunk(ctx context.Context, chunk chunker.Chunk, hints string) ChunkResult {
	result := ChunkResult{
		ChunkIndex:  chunk.Index,
		StartOffset: chunk.StartOffset,
	}

	if chunk.ExtractErr != nil {
		result.Err = chunk.ExtractErr.Error()
		return result
	}

	var lastErr error
	for attempt := 0; attempt < p.opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if err := p.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		slog.Debug("analyzing chunk", "chunk", chunk.Index, "attempt", attempt+1)
		analysis, err := p.analyzer.AnalyzeChunk(ctx, chunk.Path, hints)
		if err == nil {
			result.Clips = analysis.Clips
			result.Transcript = analysis.Transcript
			result.Success = true
			slog.Info("chunk completed", "chunk", chunk.Index, "clips", len(analysis.Clips))
			return result
		}

		lastErr = err
		if attempt < p.opts.MaxRetries-1 && ctx.Err() == nil {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			slog.Warn("chunk attempt failed, retrying",
				"chunk", chunk.Index,
				"attempt", attempt+1,
				"backoff", backoff,
				"err", err)

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no analysis attempts made")
	}
	result.Err = lastErr.Error()
	slog.Warn("chunk failed", "chunk", chunk.Index, "err", lastErr)
	return result
}
