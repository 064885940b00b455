package analyzer

import (
	"encoding/json"
	"errors"
	"strings"
)

// chunkResponse mirrors the JSON the service is instructed to produce.
type chunkResponse struct {
	VideoSummary struct {
		TotalDurationSeconds float64 `json:"total_duration_seconds"`
		TotalClips           int     `json:"total_clips"`
		FullTranscript       string  `json:"full_transcript"`
	} `json:"video_summary"`
	Clips []clipJSON `json:"clips"`
}

type clipJSON struct {
	ClipNumber      int     `json:"clip_number"`
	TimestampStart  string  `json:"timestamp_start"`
	TimestampEnd    string  `json:"timestamp_end"`
	DurationSeconds float64 `json:"duration_seconds"`
	ScriptSegment   string  `json:"script_segment"`

	Visual struct {
		ShotType           string   `json:"shot_type"`
		CameraAngle        string   `json:"camera_angle"`
		CameraMovement     string   `json:"camera_movement"`
		Composition        string   `json:"composition"`
		SettingType        string   `json:"setting_type"`
		SettingDescription string   `json:"setting_description"`
		LightingStyle      string   `json:"lighting_style"`
		ColorMood          string   `json:"color_mood"`
		SubjectType        string   `json:"subject_type"`
		SubjectDescription string   `json:"subject_description"`
		SubjectAction      string   `json:"subject_action"`
		TextOnScreen       []string `json:"text_on_screen"`
		TextPurpose        string   `json:"text_purpose"`
	} `json:"visual"`

	Emotional struct {
		PrimaryEmotion     string `json:"primary_emotion"`
		SecondaryEmotion   string `json:"secondary_emotion"`
		EmotionalIntensity string `json:"emotional_intensity"`
		EmotionalDirection string `json:"emotional_direction"`
	} `json:"emotional"`

	Functional struct {
		ClipFunction        string `json:"clip_function"`
		NarrativeRole       string `json:"narrative_role"`
		PersuasionMechanism string `json:"persuasion_mechanism"`
		PersuasionTarget    string `json:"persuasion_target"`
	} `json:"functional"`

	TransitionIn   string `json:"transition_in"`
	TransitionOut  string `json:"transition_out"`
	PurposeSummary string `json:"purpose_summary"`
}

// parseResponse recovers structured data from the raw model output. The
// strategies run in order: strict parse of the fence-stripped text, then the
// outermost balanced brace region, then truncation at the last complete clip
// record with forced closing of open delimiters. Responses that defeat all
// three are malformed.
func parseResponse(raw string) (*chunkResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty response")
	}

	candidates := []string{stripFences(raw)}
	if region := balancedRegion(raw); region != "" {
		candidates = append(candidates, region)
	}
	if forced := truncateAndClose(raw); forced != "" {
		candidates = append(candidates, forced)
	}

	var lastErr error
	for _, candidate := range candidates {
		var resp chunkResponse
		if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
			lastErr = err
			continue
		}
		return &resp, nil
	}
	return nil, lastErr
}

// stripFences removes markdown code-fence markers around the response.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(clean, "```json"); ok {
		clean = after
	} else if after, ok := strings.CutPrefix(clean, "```"); ok {
		clean = after
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

// balancedRegion returns the outermost balanced {...} region of s, or ""
// when no brace ever closes back to depth zero. String literals and escapes
// are honored so braces inside transcript text do not confuse the scan.
func balancedRegion(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// truncateAndClose salvages a truncated response: it cuts the text at the
// last position where a clip record closed cleanly and appends the closing
// delimiters still open at that point. Returns "" when no safe cut exists.
func truncateAndClose(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var stack []byte
	inString := false
	escaped := false

	lastSafe := -1
	var openAtSafe []byte

	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				return ""
			}
			stack = stack[:len(stack)-1]
			// A '}' that returns us to the clips array (or shallower)
			// means a complete record just ended.
			if ch == '}' && len(stack) <= 2 {
				lastSafe = i + 1
				openAtSafe = append(openAtSafe[:0], stack...)
			}
		}
	}

	if lastSafe <= start {
		return ""
	}

	closers := make([]byte, 0, len(openAtSafe))
	for i := len(openAtSafe) - 1; i >= 0; i-- {
		switch openAtSafe[i] {
		case '{':
			closers = append(closers, '}')
		case '[':
			closers = append(closers, ']')
		}
	}
	return s[start:lastSafe] + string(closers)
}
