package playbook

import (
	"fmt"
	"strings"
	"testing"

	"adclip/internal/ontology"
)

func TestClipTypeFor(t *testing.T) {
	cases := []struct {
		name string
		clip ontology.Clip
		want string
	}{
		{"product subject", ontology.Clip{SubjectType: "product"}, "product_shot"},
		{"product in description", ontology.Clip{SubjectType: "person", SubjectDescription: "holding the product up"}, "product_shot"},
		{"text screen", ontology.Clip{SubjectType: "text_screen"}, "text_graphic"},
		{"graphic", ontology.Clip{SubjectType: "graphic"}, "text_graphic"},
		{"screen recording", ontology.Clip{SubjectType: "interface", SettingType: "screen_recording"}, "screen_demo"},
		{"person speaking", ontology.Clip{SubjectType: "person", SubjectAction: "speaking"}, "talking_head"},
		{"person demonstrating", ontology.Clip{SubjectType: "person", SubjectAction: "demonstrating"}, "demonstration"},
		{"testimonial description", ontology.Clip{SubjectType: "person", SubjectDescription: "customer testimonial on camera"}, "testimonial"},
		{"person otherwise", ontology.Clip{SubjectType: "person", SubjectAction: "walking"}, "lifestyle"},
		{"b-roll", ontology.Clip{SubjectType: "b_roll"}, "broll"},
		{"unknown", ontology.Clip{SubjectType: "animal"}, "other"},
		{"case insensitive", ontology.Clip{SubjectType: "Person", SubjectAction: "Speaking"}, "talking_head"},
	}

	for _, c := range cases {
		if got := ClipTypeFor(&c.clip); got != c.want {
			t.Errorf("%s: ClipTypeFor = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestPlaybook_LearnDedup(t *testing.T) {
	p := New()
	clip := &ontology.Clip{
		SubjectType:   "person",
		SubjectAction: "speaking",
		ClipFunction:  "hook",
		ScriptSegment: "Stop scrolling right now",
	}

	p.Learn(clip)

	dup := *clip
	dup.ScriptSegment = "STOP SCROLLING RIGHT NOW"
	p.Learn(&dup)

	if got := len(p.ByType["talking_head"]); got != 1 {
		t.Errorf("case-insensitive duplicate script stored, ByType has %d examples", got)
	}
	if got := len(p.ByFunction["hook"]); got != 1 {
		t.Errorf("ByFunction has %d examples, want 1", got)
	}
}

func TestPlaybook_LearnEmptyScriptNeverDuplicate(t *testing.T) {
	p := New()
	clip := &ontology.Clip{SubjectType: "product", ClipFunction: "product_showcase"}

	p.Learn(clip)
	p.Learn(clip)

	if got := len(p.ByType["product_shot"]); got != 2 {
		t.Errorf("scriptless examples must always be kept, got %d", got)
	}
}

func TestPlaybook_LearnCap(t *testing.T) {
	p := New()
	for i := 0; i < maxExamplesPerKey+1; i++ {
		p.Learn(&ontology.Clip{
			SubjectType:   "person",
			SubjectAction: "speaking",
			ClipFunction:  "hook",
			ScriptSegment: fmt.Sprintf("distinct line %d", i),
		})
	}

	if got := len(p.ByType["talking_head"]); got != maxExamplesPerKey {
		t.Errorf("ByType cap: got %d, want %d", got, maxExamplesPerKey)
	}
	if got := len(p.ByFunction["hook"]); got != maxExamplesPerKey {
		t.Errorf("ByFunction cap: got %d, want %d", got, maxExamplesPerKey)
	}
	// The first example survives; insertion past the cap is dropped.
	if p.ByType["talking_head"][0].Script != "distinct line 0" {
		t.Errorf("earliest example evicted: %q", p.ByType["talking_head"][0].Script)
	}
}

func TestPlaybook_LearnUnknownFunction(t *testing.T) {
	p := New()
	p.Learn(&ontology.Clip{SubjectType: "product"})

	if got := len(p.ByFunction["unknown"]); got != 1 {
		t.Errorf("clip without a function must file under unknown, got %d", got)
	}
}

func TestPlaybook_Transitions(t *testing.T) {
	p := New()
	a := &ontology.Clip{SubjectType: "person", SubjectAction: "speaking", ScriptSegment: "look at this", ClipFunction: "hook"}
	b := &ontology.Clip{SubjectType: "product", ScriptSegment: "only $20", ClipFunction: "cta"}

	for i := 0; i < maxTransitionsPerKey+5; i++ {
		p.LearnTransition(a, b)
	}

	key := "talking_head -> product_shot"
	if got := len(p.Transitions[key]); got != maxTransitionsPerKey {
		t.Errorf("transition cap: got %d, want %d", got, maxTransitionsPerKey)
	}

	tr := p.Transitions[key][0]
	if tr.FromScript != "look at this" || tr.ToScript != "only $20" {
		t.Errorf("transition scripts = %q -> %q", tr.FromScript, tr.ToScript)
	}
	if tr.FromFunction != "hook" || tr.ToFunction != "cta" {
		t.Errorf("transition functions = %q -> %q", tr.FromFunction, tr.ToFunction)
	}
}

func TestPlaybook_LearnSequence(t *testing.T) {
	p := New()
	clips := []ontology.Clip{
		{SubjectType: "person", SubjectAction: "speaking"},
		{SubjectType: "product"},
		{SubjectType: "text_screen"},
	}
	p.LearnSequence(clips)

	if got := len(p.Transitions["talking_head -> product_shot"]); got != 1 {
		t.Errorf("first pair: got %d transitions", got)
	}
	if got := len(p.Transitions["product_shot -> text_graphic"]); got != 1 {
		t.Errorf("second pair: got %d transitions", got)
	}
	if len(p.Transitions) != 2 {
		t.Errorf("expected exactly 2 transition keys, got %d", len(p.Transitions))
	}

	// One or zero clips produce nothing.
	before := len(p.Transitions)
	p.LearnSequence(clips[:1])
	p.LearnSequence(nil)
	if len(p.Transitions) != before {
		t.Error("short sequences must not add transitions")
	}
}

func TestPlaybook_Report(t *testing.T) {
	p := New()
	p.Learn(&ontology.Clip{
		SubjectType:        "person",
		SubjectAction:      "speaking",
		SubjectDescription: "founder facing camera",
		ClipFunction:       "hook",
		ScriptSegment:      "Stop scrolling right now",
		ShotType:           "close_up",
	})
	p.Learn(&ontology.Clip{
		SubjectType:   "product",
		ClipFunction:  "product_showcase",
		ScriptSegment: "Here is the bottle",
	})
	p.LearnTransition(
		&ontology.Clip{SubjectType: "person", SubjectAction: "speaking", ScriptSegment: "intro line"},
		&ontology.Clip{SubjectType: "product", ScriptSegment: "reveal line"},
	)
	p.FinishVideo()

	report := p.Report()
	for _, want := range []string{
		"talking_head",
		"product_shot",
		"Stop scrolling right now",
		"For HOOK segments:",
		"talking_head -> product_shot",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if p.VideosLearnedFrom != 1 {
		t.Errorf("VideosLearnedFrom = %d, want 1", p.VideosLearnedFrom)
	}
}
