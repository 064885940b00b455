// Package playbook maintains the curated script-to-clip example library:
// for each kind of clip and each script function, what real ads actually
// showed on screen, plus which clip types follow which.
package playbook

import (
	"strings"
	"time"

	"adclip/internal/ontology"
)

const (
	maxExamplesPerKey   = 50
	maxTransitionsPerKey = 20
)

// ClipTypes is the closed enumeration of derived clip types.
var ClipTypes = []string{
	"talking_head",
	"product_shot",
	"screen_demo",
	"broll",
	"text_graphic",
	"lifestyle",
	"demonstration",
	"testimonial",
	"other",
}

// Example is a single script-to-clip mapping learned from a real ad.
type Example struct {
	Script            string
	ClipType          string
	VisualDescription string
	Setting           string
	SettingType       string
	SubjectType       string
	SubjectAction     string
	TextOnScreen      []string
	ShotType          string
	Function          string
}

// Transition captures the script context around one clip-type change.
type Transition struct {
	FromScript   string
	FromFunction string
	ToScript     string
	ToFunction   string
}

// Playbook is the master script-to-clip library. Examples are kept in two
// parallel bounded collections, keyed by clip type and by clip function.
type Playbook struct {
	Version   string
	CreatedAt time.Time
	UpdatedAt time.Time

	VideosLearnedFrom int

	ByType     map[string][]Example
	ByFunction map[string][]Example

	// Transitions is keyed "type_a -> type_b".
	Transitions map[string][]Transition
}

func New() *Playbook {
	now := time.Now()
	p := &Playbook{
		Version:     "4.0",
		CreatedAt:   now,
		UpdatedAt:   now,
		ByType:      make(map[string][]Example),
		ByFunction:  make(map[string][]Example),
		Transitions: make(map[string][]Transition),
	}
	for _, ct := range ClipTypes {
		p.ByType[ct] = nil
	}
	return p
}

// ClipTypeFor derives the closed clip type from a clip's open attributes.
// The checks run in priority order; the first match wins.
func ClipTypeFor(clip *ontology.Clip) string {
	subject := strings.ToLower(clip.SubjectType)
	setting := strings.ToLower(clip.SettingType)
	subjectDesc := strings.ToLower(clip.SubjectDescription)
	subjectAction := strings.ToLower(clip.SubjectAction)

	switch {
	case subject == "product" || strings.Contains(subjectDesc, "product"):
		return "product_shot"
	case subject == "text_screen" || subject == "graphic":
		return "text_graphic"
	case strings.Contains(setting, "screen_recording"):
		return "screen_demo"
	case subject == "person":
		switch {
		case subjectAction == "speaking":
			return "talking_head"
		case subjectAction == "demonstrating":
			return "demonstration"
		case strings.Contains(subjectDesc, "testimonial") || strings.Contains(subjectDesc, "customer"):
			return "testimonial"
		default:
			return "lifestyle"
		}
	case subject == "b_roll":
		return "broll"
	default:
		return "other"
	}
}

// Learn derives an example from one clip and inserts it into both keyed
// collections, subject to the per-key cap and the script dedup rule.
func (p *Playbook) Learn(clip *ontology.Clip) {
	clipType := ClipTypeFor(clip)
	function := clip.ClipFunction
	if function == "" {
		function = "unknown"
	}

	example := Example{
		Script:            strings.TrimSpace(clip.ScriptSegment),
		ClipType:          clipType,
		VisualDescription: clip.SubjectDescription,
		Setting:           clip.SettingDescription,
		SettingType:       clip.SettingType,
		SubjectType:       clip.SubjectType,
		SubjectAction:     clip.SubjectAction,
		TextOnScreen:      clip.TextOnScreen,
		ShotType:          clip.ShotType,
		Function:          function,
	}

	if p.ByType == nil {
		p.ByType = make(map[string][]Example)
	}
	if p.ByFunction == nil {
		p.ByFunction = make(map[string][]Example)
	}

	p.ByType[clipType] = insert(p.ByType[clipType], example)
	p.ByFunction[function] = insert(p.ByFunction[function], example)
	p.UpdatedAt = time.Now()
}

// insert applies the cap and dedup rules: a full key accepts nothing more
// (existing entries are never evicted), and within one key no two examples
// may share the same case-insensitive script text. Examples without a
// script never count as duplicates.
func insert(examples []Example, ex Example) []Example {
	if len(examples) >= maxExamplesPerKey {
		return examples
	}
	script := strings.ToLower(ex.Script)
	if script != "" {
		for i := range examples {
			if strings.ToLower(examples[i].Script) == script {
				return examples
			}
		}
	}
	return append(examples, ex)
}

// LearnTransition records the script context of clip a being followed by
// clip b. Transition examples are capped per pair but not deduplicated.
func (p *Playbook) LearnTransition(a, b *ontology.Clip) {
	key := ClipTypeFor(a) + " -> " + ClipTypeFor(b)

	if p.Transitions == nil {
		p.Transitions = make(map[string][]Transition)
	}
	if len(p.Transitions[key]) >= maxTransitionsPerKey {
		return
	}
	p.Transitions[key] = append(p.Transitions[key], Transition{
		FromScript:   a.ScriptSegment,
		FromFunction: a.ClipFunction,
		ToScript:     b.ScriptSegment,
		ToFunction:   b.ClipFunction,
	})
	p.UpdatedAt = time.Now()
}

// LearnSequence records every adjacent pair of one video's clip sequence.
func (p *Playbook) LearnSequence(clips []ontology.Clip) {
	for i := 0; i+1 < len(clips); i++ {
		p.LearnTransition(&clips[i], &clips[i+1])
	}
}

// FinishVideo records the completion of one video's learning pass.
func (p *Playbook) FinishVideo() {
	p.VideosLearnedFrom++
	p.UpdatedAt = time.Now()
}
