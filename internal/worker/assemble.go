package worker

import (
	"fmt"
	"sort"
	"strings"

	"adclip/internal/ontology"
	"adclip/internal/timefmt"
)

// ChunkResult is the outcome of analyzing one chunk, successful or not.
// Results arrive in arbitrary completion order; the assembler owns them
// once the dispatcher has collected the full set.
type ChunkResult struct {
	ChunkIndex  int
	StartOffset float64
	Clips       []ontology.Clip
	Transcript  string
	Success     bool
	Err         string
}

// assembleResults turns the unordered chunk results into one globally
// ordered clip sequence and one transcript. Clip timestamps are corrected
// by their chunk's offset and clips renumbered 1..n with no gaps, however
// many chunks failed. Failed chunks contribute a transcript placeholder and
// zero clips; a fully failed video yields a valid empty sequence.
func assembleResults(results []ChunkResult) ([]ontology.Clip, string) {
	sorted := make([]ChunkResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ChunkIndex < sorted[j].ChunkIndex
	})

	var clips []ontology.Clip
	var parts []string

	for _, r := range sorted {
		if !r.Success {
			parts = append(parts, fmt.Sprintf("[Chunk %d failed: %s]", r.ChunkIndex, r.Err))
			continue
		}
		for _, c := range r.Clips {
			c.CorrectedStart = timefmt.AddOffset(c.TimestampStart, r.StartOffset)
			c.CorrectedEnd = timefmt.AddOffset(c.TimestampEnd, r.StartOffset)
			clips = append(clips, c)
		}
		if r.Transcript != "" {
			parts = append(parts, r.Transcript)
		}
	}

	for i := range clips {
		clips[i].GlobalIndex = i + 1
	}

	return clips, strings.Join(parts, " ")
}
