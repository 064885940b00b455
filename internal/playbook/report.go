package playbook

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var clipTypeDescriptions = map[string]string{
	"talking_head":  "Person speaking directly to camera. Use for direct address, personal connection, credibility.",
	"product_shot":  "Close-up or beauty shot of the product. Use when mentioning the product, features, or results.",
	"screen_demo":   "Screen recording or software demonstration. Use when showing how something works.",
	"broll":         "Supplementary footage. Use to illustrate concepts, add visual interest, or cover cuts.",
	"text_graphic":  "Text, titles, or graphics on screen. Use for emphasis, stats, quotes, or CTAs.",
	"lifestyle":     "People using product or in relevant situations. Use for aspirational or relatable moments.",
	"demonstration": "Person actively showing/doing something. Use for tutorials, how-tos, proof.",
	"testimonial":   "Customer or user speaking. Use for social proof and credibility.",
}

var functionDescriptions = []struct {
	name        string
	description string
}{
	{"hook", "Opening that grabs attention. First 3-5 seconds."},
	{"problem", "Identifying the pain point or challenge."},
	{"agitation", "Making the problem feel urgent or painful."},
	{"solution", "Introducing the product/service as the answer."},
	{"demo", "Showing how it works."},
	{"benefit", "Explaining what the viewer gains."},
	{"proof", "Evidence it works (testimonials, stats, results)."},
	{"cta", "Call to action - what to do next."},
	{"transition", "Connecting segments, pacing changes."},
}

// Report renders the complete playbook as reference text. Like the ontology
// report this is a write-only artifact.
func (p *Playbook) Report() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintf(&b, "%s\nSCRIPT-TO-CLIP PLAYBOOK\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Videos Analyzed: %d\n", p.VideosLearnedFrom)
	fmt.Fprintf(&b, "Last Updated: %s\n\n", p.UpdatedAt.Format(time.RFC3339))
	b.WriteString("This playbook shows what clips to use for different script content.\n")
	b.WriteString("Use it as a reference when breaking down a new script.\n\n")

	fmt.Fprintf(&b, "%s\nPART 1: CLIP TYPES - WHEN TO USE EACH\n%s\n\n", rule, rule)
	for _, clipType := range ClipTypes {
		description, ok := clipTypeDescriptions[clipType]
		if !ok {
			continue
		}
		examples := p.ByType[clipType]

		fmt.Fprintf(&b, "%s\n## %s\n%s\n", thin, strings.ToUpper(strings.ReplaceAll(clipType, "_", " ")), thin)
		fmt.Fprintf(&b, "Definition: %s\n", description)
		fmt.Fprintf(&b, "Examples in library: %d\n\n", len(examples))

		if len(examples) == 0 {
			b.WriteString("  No examples yet - analyze more videos to build library.\n\n")
			continue
		}

		b.WriteString("WHEN TO USE (learned from real ads):\n\n")
		byFunc := groupByFunction(examples)
		for _, fn := range sortedKeys(byFunc) {
			fmt.Fprintf(&b, "  For %s segments:\n", strings.ToUpper(fn))
			for _, ex := range limitExamples(byFunc[fn], 3) {
				fmt.Fprintf(&b, "    Script: %q\n", truncate(orNoDialogue(ex.Script), 80))
				if ex.VisualDescription != "" {
					fmt.Fprintf(&b, "    Visual: %s\n", truncate(ex.VisualDescription, 60))
				}
				if len(ex.TextOnScreen) > 0 {
					fmt.Fprintf(&b, "    Text on screen: %s\n", strings.Join(ex.TextOnScreen, " | "))
				}
				b.WriteString("\n")
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\nPART 2: CLIP SELECTION BY SCRIPT FUNCTION\n%s\n\n", rule, rule)
	b.WriteString("What clips work best for each part of the ad structure:\n\n")
	for _, fd := range functionDescriptions {
		examples := p.ByFunction[fd.name]

		fmt.Fprintf(&b, "%s\n## %s\n%s\n", thin, strings.ToUpper(fd.name), thin)
		fmt.Fprintf(&b, "Purpose: %s\n\n", fd.description)

		if len(examples) == 0 {
			b.WriteString("  No examples yet.\n\n")
			continue
		}

		b.WriteString("Clip types that work for this:\n")
		for _, ct := range typesByCount(examples) {
			fmt.Fprintf(&b, "  - %s\n", ct)
		}
		b.WriteString("\nExamples:\n")
		for _, ex := range limitExamples(examples, 5) {
			fmt.Fprintf(&b, "  Script: %q\n", truncate(orNoDialogue(ex.Script), 70))
			fmt.Fprintf(&b, "  -> Use: %s\n", ex.ClipType)
			if ex.VisualDescription != "" {
				fmt.Fprintf(&b, "     Show: %s\n", truncate(ex.VisualDescription, 50))
			}
			b.WriteString("\n")
		}
	}

	if len(p.Transitions) > 0 {
		fmt.Fprintf(&b, "\n%s\nPART 3: CLIP TRANSITIONS\n%s\n\n", rule, rule)
		b.WriteString("What clip types naturally follow each other:\n\n")
		keys := make([]string, 0, len(p.Transitions))
		for k := range p.Transitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "  %s\n", key)
			if examples := p.Transitions[key]; len(examples) > 0 {
				ex := examples[0]
				if ex.FromScript != "" || ex.ToScript != "" {
					fmt.Fprintf(&b, "    e.g., %q -> %q\n", truncate(ex.FromScript, 40), truncate(ex.ToScript, 40))
				}
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n%s\nPART 4: QUICK REFERENCE RULES\n%s\n\n", rule, rule)
	b.WriteString(`CONCEPTUAL BOUNDARIES:
  - Break script at natural thought boundaries
  - If a line takes >3 seconds to say, it likely needs multiple clips
  - Each clip should have ONE visual focus
  - Change clip when: topic shifts, emotion shifts, or emphasis needed

MATCHING RULES:
  - Mention product by name -> PRODUCT SHOT
  - Show how it works -> SCREEN DEMO or DEMONSTRATION
  - Direct address ('you', 'your') -> TALKING HEAD
  - Stats or key points -> TEXT GRAPHIC
  - Emotional/aspirational language -> LIFESTYLE or BROLL
  - Customer quote or result -> TESTIMONIAL
  - Action words (click, sign up, get) -> CTA with TEXT GRAPHIC

PACING:
  - Don't stay on talking head too long - cut to broll/product
  - After product shot, often return to talking head
  - Text graphics are punchy - use for emphasis, not narration
  - Broll covers transitions and adds visual variety
`)

	return b.String()
}

func groupByFunction(examples []Example) map[string][]Example {
	grouped := make(map[string][]Example)
	for _, ex := range examples {
		grouped[ex.Function] = append(grouped[ex.Function], ex)
	}
	return grouped
}

func sortedKeys(m map[string][]Example) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// typesByCount lists the clip types used by a set of examples, most used first.
func typesByCount(examples []Example) []string {
	counts := make(map[string]int)
	var order []string
	for _, ex := range examples {
		if counts[ex.ClipType] == 0 {
			order = append(order, ex.ClipType)
		}
		counts[ex.ClipType]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

func limitExamples(examples []Example, n int) []Example {
	if len(examples) > n {
		return examples[:n]
	}
	return examples
}

func orNoDialogue(script string) string {
	if script == "" {
		return "[no dialogue]"
	}
	return script
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
