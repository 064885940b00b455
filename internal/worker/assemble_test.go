package worker

import (
	"math/rand"
	"strings"
	"testing"

	"adclip/internal/ontology"
)

func chunkOK(index int, offset float64, transcript string, starts ...string) ChunkResult {
	r := ChunkResult{
		ChunkIndex:  index,
		StartOffset: offset,
		Transcript:  transcript,
		Success:     true,
	}
	for i, start := range starts {
		r.Clips = append(r.Clips, ontology.Clip{
			LocalIndex:     i + 1,
			TimestampStart: start,
			TimestampEnd:   start,
		})
	}
	return r
}

func TestAssembleResults_OrderIndependent(t *testing.T) {
	results := []ChunkResult{
		chunkOK(0, 0, "first part.", "00:01.000", "00:20.000"),
		chunkOK(1, 40, "second part.", "00:05.000"),
		chunkOK(2, 80, "third part.", "00:02.000", "00:10.000"),
	}

	wantClips, wantTranscript := assembleResults(results)

	for trial := 0; trial < 5; trial++ {
		shuffled := make([]ChunkResult, len(results))
		copy(shuffled, results)
		rand.New(rand.NewSource(int64(trial))).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		clips, transcript := assembleResults(shuffled)
		if transcript != wantTranscript {
			t.Errorf("trial %d: transcript = %q, want %q", trial, transcript, wantTranscript)
		}
		if len(clips) != len(wantClips) {
			t.Fatalf("trial %d: %d clips, want %d", trial, len(clips), len(wantClips))
		}
		for i := range clips {
			if clips[i].GlobalIndex != wantClips[i].GlobalIndex ||
				clips[i].CorrectedStart != wantClips[i].CorrectedStart {
				t.Errorf("trial %d: clip %d = {%d %s}, want {%d %s}",
					trial, i,
					clips[i].GlobalIndex, clips[i].CorrectedStart,
					wantClips[i].GlobalIndex, wantClips[i].CorrectedStart)
			}
		}
	}
}

func TestAssembleResults_FailedMiddleChunk(t *testing.T) {
	// 95s video, three chunks; the middle one (offset 40) failed. Clips
	// renumber 1..4 with no gap and the tail chunk's offsets still apply.
	results := []ChunkResult{
		chunkOK(2, 80, "final words.", "00:02.000", "00:10.000"),
		{ChunkIndex: 1, StartOffset: 40, Err: "model timeout"},
		chunkOK(0, 0, "opening words.", "00:01.000", "00:20.000"),
	}

	clips, transcript := assembleResults(results)

	if len(clips) != 4 {
		t.Fatalf("got %d clips, want 4", len(clips))
	}
	for i, c := range clips {
		if c.GlobalIndex != i+1 {
			t.Errorf("clip %d GlobalIndex = %d, want %d", i, c.GlobalIndex, i+1)
		}
	}

	wantStarts := []string{"00:01.000", "00:20.000", "01:22.000", "01:30.000"}
	for i, c := range clips {
		if c.CorrectedStart != wantStarts[i] {
			t.Errorf("clip %d CorrectedStart = %q, want %q", i+1, c.CorrectedStart, wantStarts[i])
		}
	}

	// Chunk-local timestamps stay untouched.
	if clips[2].TimestampStart != "00:02.000" {
		t.Errorf("chunk-local timestamp rewritten: %q", clips[2].TimestampStart)
	}

	if !strings.Contains(transcript, "[Chunk 1 failed: model timeout]") {
		t.Errorf("transcript missing failure placeholder: %q", transcript)
	}
	if got := "opening words. [Chunk 1 failed: model timeout] final words."; transcript != got {
		t.Errorf("transcript = %q, want %q", transcript, got)
	}
}

func TestAssembleResults_AllFailed(t *testing.T) {
	results := []ChunkResult{
		{ChunkIndex: 0, StartOffset: 0, Err: "boom"},
		{ChunkIndex: 1, StartOffset: 40, Err: "boom again"},
	}

	clips, transcript := assembleResults(results)
	if len(clips) != 0 {
		t.Errorf("got %d clips from fully failed video, want 0", len(clips))
	}
	want := "[Chunk 0 failed: boom] [Chunk 1 failed: boom again]"
	if transcript != want {
		t.Errorf("transcript = %q, want %q", transcript, want)
	}
}

func TestAssembleResults_Empty(t *testing.T) {
	clips, transcript := assembleResults(nil)
	if len(clips) != 0 || transcript != "" {
		t.Errorf("assembleResults(nil) = (%v, %q)", clips, transcript)
	}
}

func TestAssembleResults_SkipsEmptyTranscript(t *testing.T) {
	results := []ChunkResult{
		chunkOK(0, 0, "", "00:01.000"),
		chunkOK(1, 40, "tail.", "00:03.000"),
	}
	_, transcript := assembleResults(results)
	if transcript != "tail." {
		t.Errorf("transcript = %q, want %q", transcript, "tail.")
	}
}
