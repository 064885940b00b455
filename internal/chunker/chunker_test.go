package chunker

import (
	"math"
	"testing"
)

func TestPlan_CoversSourceExactly(t *testing.T) {
	cases := []struct {
		total float64
		chunk float64
	}{
		{95, 40},
		{120, 40},
		{40, 40},
		{39.5, 40},
		{600.7, 40},
		{10, 3},
	}

	for _, c := range cases {
		chunks := Plan(c.total, c.chunk)
		if len(chunks) == 0 {
			t.Errorf("Plan(%f, %f) produced no chunks", c.total, c.chunk)
			continue
		}

		sum := 0.0
		for i, ch := range chunks {
			if ch.Index != i {
				t.Errorf("Plan(%f, %f) chunk %d has index %d", c.total, c.chunk, i, ch.Index)
			}
			if ch.Duration <= 0 {
				t.Errorf("Plan(%f, %f) chunk %d has non-positive duration %f", c.total, c.chunk, i, ch.Duration)
			}
			// offsets[i] == offsets[i-1] + duration[i-1]
			if math.Abs(ch.StartOffset-sum) > 1e-9 {
				t.Errorf("Plan(%f, %f) chunk %d offset = %f, want %f", c.total, c.chunk, i, ch.StartOffset, sum)
			}
			sum += ch.Duration
		}
		if math.Abs(sum-c.total) > 1e-9 {
			t.Errorf("Plan(%f, %f) durations sum to %f, want %f", c.total, c.chunk, sum, c.total)
		}
	}
}

func TestPlan_NinetyFiveSecondVideo(t *testing.T) {
	chunks := Plan(95, 40)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	wantOffsets := []float64{0, 40, 80}
	wantDurations := []float64{40, 40, 15}
	for i, ch := range chunks {
		if ch.StartOffset != wantOffsets[i] {
			t.Errorf("chunk %d offset = %f, want %f", i, ch.StartOffset, wantOffsets[i])
		}
		if ch.Duration != wantDurations[i] {
			t.Errorf("chunk %d duration = %f, want %f", i, ch.Duration, wantDurations[i])
		}
	}
}

func TestPlan_DropsZeroDurationTail(t *testing.T) {
	// 80s at 40s chunks is exactly two windows, never a third empty one.
	chunks := Plan(80, 40)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for 80s/40s, got %d", len(chunks))
	}
}

func TestPlan_InvalidInputs(t *testing.T) {
	if chunks := Plan(0, 40); chunks != nil {
		t.Errorf("Plan(0, 40) = %v, want nil", chunks)
	}
	if chunks := Plan(100, 0); chunks != nil {
		t.Errorf("Plan(100, 0) = %v, want nil", chunks)
	}
	if chunks := Plan(-5, 40); chunks != nil {
		t.Errorf("Plan(-5, 40) = %v, want nil", chunks)
	}
}

func TestPlan_ShortVideoSingleChunk(t *testing.T) {
	chunks := Plan(12.5, 40)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].StartOffset != 0 || chunks[0].Duration != 12.5 {
		t.Errorf("chunk = {offset %f, duration %f}, want {0, 12.5}",
			chunks[0].StartOffset, chunks[0].Duration)
	}
}
