// Package analyzer wraps the external clip-extraction service: it sends one
// chunk's media plus the analysis instruction to Gemini and converts the
// structured (and sometimes malformed) response into clips. All failures
// surface as tagged errors; nothing panics past this boundary.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"adclip/internal/ontology"
)

var (
	// ErrServiceCall marks analysis calls that the service rejected or that
	// failed in transit.
	ErrServiceCall = errors.New("clip extraction call failed")

	// ErrServiceTimeout marks analysis calls that exceeded the per-call budget.
	ErrServiceTimeout = errors.New("clip extraction timed out")

	// ErrMalformedResponse marks responses no parse strategy could recover.
	ErrMalformedResponse = errors.New("malformed clip extraction response")
)

// ChunkAnalysis is the converted result of analyzing one chunk.
type ChunkAnalysis struct {
	Clips      []ontology.Clip
	Transcript string
}

// Analyzer is the chunk analyzer adapter around the Gemini client.
type Analyzer struct {
	client    *genai.Client
	model     string
	timeout   time.Duration
	maxSizeMB float64
}

// New creates an Analyzer for the given model ID.
func New(ctx context.Context, apiKey, model string, timeout time.Duration, maxSizeMB float64) (*Analyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Analyzer{
		client:    client,
		model:     model,
		timeout:   timeout,
		maxSizeMB: maxSizeMB,
	}, nil
}

func (a *Analyzer) Close() error {
	return a.client.Close()
}

var chunkMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// AnalyzeChunk sends one chunk's media to the service and returns its clips
// (with chunk-local timestamps) and transcript. The call is bounded by the
// configured timeout; a timeout is an ErrServiceTimeout, never a hang.
func (a *Analyzer) AnalyzeChunk(ctx context.Context, path, hints string) (*ChunkAnalysis, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat chunk: %v", ErrServiceCall, err)
	}
	if sizeMB := float64(stat.Size()) / (1024 * 1024); sizeMB > a.maxSizeMB {
		return nil, fmt.Errorf("%w: chunk too large: %.2f MB (max %.0f MB)", ErrServiceCall, sizeMB, a.maxSizeMB)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read chunk: %v", ErrServiceCall, err)
	}

	mimeType, ok := chunkMIMETypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mimeType = "video/mp4"
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	model := a.client.GenerativeModel(a.model)
	resp, err := model.GenerateContent(callCtx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(buildPrompt(hints)),
	)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: after %s: %v", ErrServiceTimeout, a.timeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceCall, err)
	}

	raw := responseText(resp)
	slog.Debug("received analysis response", "chunk", filepath.Base(path), "chars", len(raw))

	parsed, err := parseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	analysis := &ChunkAnalysis{
		Transcript: parsed.VideoSummary.FullTranscript,
	}
	for _, c := range parsed.Clips {
		analysis.Clips = append(analysis.Clips, convertClip(c))
	}
	return analysis, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

func convertClip(c clipJSON) ontology.Clip {
	return ontology.Clip{
		LocalIndex:      c.ClipNumber,
		TimestampStart:  c.TimestampStart,
		TimestampEnd:    c.TimestampEnd,
		DurationSeconds: c.DurationSeconds,
		ScriptSegment:   c.ScriptSegment,

		ShotType:           c.Visual.ShotType,
		CameraAngle:        c.Visual.CameraAngle,
		CameraMovement:     c.Visual.CameraMovement,
		Composition:        c.Visual.Composition,
		SettingType:        c.Visual.SettingType,
		SettingDescription: c.Visual.SettingDescription,
		LightingStyle:      c.Visual.LightingStyle,
		ColorMood:          c.Visual.ColorMood,
		SubjectType:        c.Visual.SubjectType,
		SubjectDescription: c.Visual.SubjectDescription,
		SubjectAction:      c.Visual.SubjectAction,
		TextOnScreen:       c.Visual.TextOnScreen,
		TextPurpose:        c.Visual.TextPurpose,

		PrimaryEmotion:     c.Emotional.PrimaryEmotion,
		SecondaryEmotion:   c.Emotional.SecondaryEmotion,
		EmotionalIntensity: c.Emotional.EmotionalIntensity,
		EmotionalDirection: c.Emotional.EmotionalDirection,

		ClipFunction:        c.Functional.ClipFunction,
		NarrativeRole:       c.Functional.NarrativeRole,
		PersuasionMechanism: c.Functional.PersuasionMechanism,
		PersuasionTarget:    c.Functional.PersuasionTarget,

		TransitionIn:   c.TransitionIn,
		TransitionOut:  c.TransitionOut,
		PurposeSummary: c.PurposeSummary,
	}
}
