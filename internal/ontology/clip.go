package ontology

import (
	"fmt"
	"strings"
)

// Clip is one shot/take within a video, the atomic unit of the ontology.
// Every categorical attribute is an open-vocabulary string; empty means the
// analysis service did not determine a value.
type Clip struct {
	// LocalIndex is the clip's position within its originating chunk,
	// as numbered by the analysis service. GlobalIndex is the final
	// 1-based, gapless position across all chunks, assigned during
	// reassembly.
	LocalIndex  int
	GlobalIndex int

	// TimestampStart/End are chunk-local MM:SS.mmm strings as returned by
	// the service. CorrectedStart/End are the same instants after adding
	// the chunk's offset into the source video.
	TimestampStart  string
	TimestampEnd    string
	CorrectedStart  string
	CorrectedEnd    string
	DurationSeconds float64

	// ScriptSegment is the verbatim words spoken during this clip.
	ScriptSegment string

	// Visual
	ShotType           string
	CameraAngle        string
	CameraMovement     string
	Composition        string
	SettingType        string
	SettingDescription string
	LightingStyle      string
	ColorMood          string
	SubjectType        string
	SubjectDescription string
	SubjectAction      string
	TextOnScreen       []string
	TextPurpose        string

	// Emotional
	PrimaryEmotion     string
	SecondaryEmotion   string
	EmotionalIntensity string
	EmotionalDirection string

	// Functional
	ClipFunction        string
	NarrativeRole       string
	PersuasionMechanism string
	PersuasionTarget    string

	// Structure
	TransitionIn  string
	TransitionOut string

	PurposeSummary string
}

// Text renders the clip as a report block for the per-video analysis file.
func (c *Clip) Text() string {
	var b strings.Builder
	rule := strings.Repeat("-", 70)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "CLIP %d\n", c.GlobalIndex)
	fmt.Fprintf(&b, "Timestamp: %s -> %s (%.2fs)\n", c.CorrectedStart, c.CorrectedEnd, c.DurationSeconds)
	fmt.Fprintf(&b, "%s\n", rule)

	b.WriteString("\nSCRIPT SEGMENT:\n")
	if c.ScriptSegment != "" {
		fmt.Fprintf(&b, "  %q\n", c.ScriptSegment)
	} else {
		b.WriteString("  [No speech]\n")
	}

	b.WriteString("\nVISUAL:\n")
	fmt.Fprintf(&b, "  Shot: %s\n", c.ShotType)
	fmt.Fprintf(&b, "  Camera: %s / %s\n", c.CameraAngle, c.CameraMovement)
	fmt.Fprintf(&b, "  Composition: %s\n", c.Composition)
	fmt.Fprintf(&b, "  Setting: %s - %s\n", c.SettingType, c.SettingDescription)
	fmt.Fprintf(&b, "  Lighting: %s\n", c.LightingStyle)
	fmt.Fprintf(&b, "  Color: %s\n", c.ColorMood)
	fmt.Fprintf(&b, "  Subject: %s - %s\n", c.SubjectType, c.SubjectAction)
	fmt.Fprintf(&b, "  Subject Detail: %s\n", c.SubjectDescription)
	if len(c.TextOnScreen) > 0 {
		fmt.Fprintf(&b, "  Text On Screen: %s\n", strings.Join(c.TextOnScreen, " | "))
		fmt.Fprintf(&b, "  Text Purpose: %s\n", c.TextPurpose)
	}

	b.WriteString("\nEMOTIONAL:\n")
	fmt.Fprintf(&b, "  Primary: %s\n", c.PrimaryEmotion)
	if c.SecondaryEmotion != "" {
		fmt.Fprintf(&b, "  Secondary: %s\n", c.SecondaryEmotion)
	}
	fmt.Fprintf(&b, "  Intensity: %s\n", c.EmotionalIntensity)
	fmt.Fprintf(&b, "  Direction: %s\n", c.EmotionalDirection)

	b.WriteString("\nFUNCTIONAL:\n")
	fmt.Fprintf(&b, "  Function: %s\n", c.ClipFunction)
	fmt.Fprintf(&b, "  Narrative Role: %s\n", c.NarrativeRole)
	fmt.Fprintf(&b, "  Persuasion: %s -> %s\n", c.PersuasionMechanism, c.PersuasionTarget)

	fmt.Fprintf(&b, "\nTRANSITIONS: %s -> %s\n", c.TransitionIn, c.TransitionOut)

	b.WriteString("\nPURPOSE:\n")
	fmt.Fprintf(&b, "  %s\n", c.PurposeSummary)

	return b.String()
}
