// Package worker orchestrates the analysis pipeline: chunking, the bounded
// parallel dispatch of chunk analyses, reassembly into one ordered clip
// sequence, and the serialized merge into the shared ontology and playbook.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"adclip/internal/analyzer"
	"adclip/internal/chunker"
	"adclip/internal/ontology"
	"adclip/internal/playbook"
	"adclip/internal/store"
)

// Options configures a pipeline run.
type Options struct {
	OutputDir        string // defaults to each video's directory
	Model            string // concrete Gemini model ID
	APIKey           string
	ChunkDurationSec int
	ChunkWorkers     int
	VideoWorkers     int
	MaxRetries       int
	RateLimitPerMin  int
	RequestTimeout   time.Duration
	MaxChunkSizeMB   float64
	StorePath        string
	SkipPlaybook     bool
	Sequential       bool
}

// Pipeline holds the per-run resources and the shared aggregation state.
// Chunk analysis runs in parallel; the master ontology and playbook are
// mutated only inside the mutex-guarded per-video merge step, preserving
// the single-writer discipline even when videos run concurrently.
type Pipeline struct {
	opts     Options
	runID    string
	analyzer *analyzer.Analyzer
	store    *store.Store
	limiter  *rate.Limiter

	mu       sync.Mutex
	master   *ontology.Master
	playbook *playbook.Playbook
}

// VideoResult summarizes one video's run. Err is set only for failures that
// abort the whole video (an unprobeable source); chunk-level failures are
// counted, never raised.
type VideoResult struct {
	Video        string
	Clips        int
	ChunksTotal  int
	ChunksFailed int
	ReportPath   string
	Err          error
}

// New builds a pipeline: connects the analyzer, opens the snapshot store
// and loads (or creates) the ontology and playbook.
func New(ctx context.Context, opts Options) (*Pipeline, error) {
	an, err := analyzer.New(ctx, opts.APIKey, opts.Model, opts.RequestTimeout, opts.MaxChunkSizeMB)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(opts.StorePath)
	if err != nil {
		an.Close()
		return nil, err
	}

	master, err := st.LoadOntology()
	if err == nil {
		var pb *playbook.Playbook
		pb, err = st.LoadPlaybook()
		if err == nil {
			slog.Info("loaded knowledge stores",
				"store", opts.StorePath,
				"videos_analyzed", master.VideosAnalyzed,
				"clips_analyzed", master.TotalClipsAnalyzed,
				"videos_learned_from", pb.VideosLearnedFrom)

			return &Pipeline{
				opts:     opts,
				runID:    uuid.NewString(),
				analyzer: an,
				store:    st,
				limiter:  rate.NewLimiter(rate.Limit(float64(opts.RateLimitPerMin)/60.0), 1),
				master:   master,
				playbook: pb,
			}, nil
		}
	}

	st.Close()
	an.Close()
	return nil, err
}

// Close releases the analyzer client and the snapshot store.
func (p *Pipeline) Close() error {
	return errors.Join(p.analyzer.Close(), p.store.Close())
}

// RunID identifies this pipeline run in logs and artifacts.
func (p *Pipeline) RunID() string {
	return p.runID
}

// ProcessVideo runs the full pipeline for one video: split into chunks,
// analyze them concurrently, assemble the ordered clip sequence, then merge
// it into the shared stores and persist. Chunk failures reduce the result,
// they never abort it; only a probe failure does.
func (p *Pipeline) ProcessVideo(ctx context.Context, videoPath string) VideoResult {
	result := VideoResult{Video: videoPath}

	slog.Info("processing video", "video", filepath.Base(videoPath), "run_id", p.runID)

	tempDir, err := os.MkdirTemp("", "adclip_chunks_")
	if err != nil {
		result.Err = fmt.Errorf("create chunk dir: %w", err)
		return result
	}
	defer os.RemoveAll(tempDir)

	chunks, err := chunker.Split(ctx, videoPath, p.opts.ChunkDurationSec, tempDir)
	if err != nil {
		result.Err = err
		return result
	}
	result.ChunksTotal = len(chunks)

	hints := p.hintsSnapshot()
	chunkResults := p.dispatchChunks(ctx, chunks, hints)

	clips, transcript := assembleResults(chunkResults)
	for _, r := range chunkResults {
		if !r.Success {
			result.ChunksFailed++
		}
	}
	result.Clips = len(clips)

	slog.Info("video assembled",
		"video", filepath.Base(videoPath),
		"clips", len(clips),
		"chunks_ok", result.ChunksTotal-result.ChunksFailed,
		"chunks_failed", result.ChunksFailed)

	if err := p.mergeVideo(clips); err != nil {
		slog.Warn("snapshot save failed", "video", filepath.Base(videoPath), "err", err)
	}

	reportPath, err := p.writeVideoReport(videoPath, clips, transcript)
	if err != nil {
		slog.Warn("video report failed", "video", filepath.Base(videoPath), "err", err)
	}
	result.ReportPath = reportPath

	return result
}

// hintsSnapshot reads the known-vocabulary block under the lock so a
// concurrent video's merge cannot race the read.
func (p *Pipeline) hintsSnapshot() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master.Hints()
}

// mergeVideo is the single critical section per video: every clip is folded
// into the ontology and playbook in global order, counters advance, and the
// snapshots and knowledge reports are written out.
func (p *Pipeline) mergeVideo(clips []ontology.Clip) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range clips {
		p.master.Merge(&clips[i])
		if !p.opts.SkipPlaybook {
			p.playbook.Learn(&clips[i])
		}
	}
	p.master.FinishVideo(ontology.FunctionSequence(clips))
	if !p.opts.SkipPlaybook {
		p.playbook.LearnSequence(clips)
		p.playbook.FinishVideo()
	}

	errs := []error{
		p.store.SaveOntology(p.master),
		store.WriteReport(reportPath(p.opts.StorePath, "ontology"), p.master.Report()),
	}
	if !p.opts.SkipPlaybook {
		errs = append(errs,
			p.store.SavePlaybook(p.playbook),
			store.WriteReport(reportPath(p.opts.StorePath, "playbook"), p.playbook.Report()),
		)
	}
	return errors.Join(errs...)
}

// reportPath derives a report file path from the snapshot DB path, e.g.
// adclip_brain.db -> adclip_brain_ontology.txt.
func reportPath(storePath, kind string) string {
	base := strings.TrimSuffix(storePath, filepath.Ext(storePath))
	return base + "_" + kind + ".txt"
}

// writeVideoReport renders the per-video clip-by-clip analysis file.
func (p *Pipeline) writeVideoReport(videoPath string, clips []ontology.Clip, transcript string) (string, error) {
	outputDir := p.opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(videoPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	path := filepath.Join(outputDir,
		fmt.Sprintf("%s_ontology_%s.txt", base, time.Now().Format("20060102_150405")))

	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "%s\nVIDEO CLIP ONTOLOGY ANALYSIS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Video: %s\n", filepath.Base(videoPath))
	fmt.Fprintf(&b, "Analyzed: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Clips: %d\n\n", len(clips))

	fmt.Fprintf(&b, "%s\nFULL TRANSCRIPT\n%s\n", rule, rule)
	if transcript == "" {
		transcript = "[No transcript]"
	}
	fmt.Fprintf(&b, "%s\n\n", transcript)

	fmt.Fprintf(&b, "%s\nCLIP-BY-CLIP ONTOLOGY\n%s\n", rule, rule)
	for i := range clips {
		b.WriteString(clips[i].Text())
	}
	fmt.Fprintf(&b, "%s\n", rule)

	if err := store.WriteReport(path, b.String()); err != nil {
		return "", err
	}
	return path, nil
}
