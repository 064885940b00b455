package ontology

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Master is the cross-video, ever-growing frequency-weighted taxonomy of
// clip attributes. It is mutated exactly once per clip, always on the
// assembled single-threaded clip stream, never inside chunk workers; the
// batch orchestrator serializes merges from concurrent videos.
type Master struct {
	Version   string
	CreatedAt time.Time
	UpdatedAt time.Time

	VideosAnalyzed     int
	TotalClipsAnalyzed int

	// Visual
	ShotTypes       *Category
	CameraAngles    *Category
	CameraMovements *Category
	Compositions    *Category
	SettingTypes    *Category
	LightingStyles  *Category
	ColorMoods      *Category
	SubjectTypes    *Category
	SubjectActions  *Category
	TextPurposes    *Category

	// Emotional. Emotions absorbs both primary and secondary emotions.
	Emotions             *Category
	EmotionalIntensities *Category

	// Functional
	ClipFunctions        *Category
	NarrativeRoles       *Category
	PersuasionMechanisms *Category

	// Structure. TransitionTypes absorbs both transition-in and -out.
	TransitionTypes *Category

	// CommonSequences holds one ordered clip-function sequence per video,
	// append-only, for pattern reporting.
	CommonSequences [][]string

	// FunctionDurationAverages is a running mean per function, updated
	// incrementally so no sum or replay is ever needed.
	FunctionDurationAverages map[string]float64

	// EmotionFunctionCorrelations counts function/primary-emotion co-occurrence.
	EmotionFunctionCorrelations map[string]map[string]int
}

func NewMaster() *Master {
	now := time.Now()
	return &Master{
		Version:   "1.0",
		CreatedAt: now,
		UpdatedAt: now,

		ShotTypes:       NewCategory("shot_types"),
		CameraAngles:    NewCategory("camera_angles"),
		CameraMovements: NewCategory("camera_movements"),
		Compositions:    NewCategory("compositions"),
		SettingTypes:    NewCategory("setting_types"),
		LightingStyles:  NewCategory("lighting_styles"),
		ColorMoods:      NewCategory("color_moods"),
		SubjectTypes:    NewCategory("subject_types"),
		SubjectActions:  NewCategory("subject_actions"),
		TextPurposes:    NewCategory("text_purposes"),

		Emotions:             NewCategory("emotions"),
		EmotionalIntensities: NewCategory("emotional_intensities"),

		ClipFunctions:        NewCategory("clip_functions"),
		NarrativeRoles:       NewCategory("narrative_roles"),
		PersuasionMechanisms: NewCategory("persuasion_mechanisms"),

		TransitionTypes: NewCategory("transition_types"),

		FunctionDurationAverages:    make(map[string]float64),
		EmotionFunctionCorrelations: make(map[string]map[string]int),
	}
}

// Merge folds one clip into the ontology. Called exactly once per clip,
// in increasing global-index order.
func (m *Master) Merge(clip *Clip) {
	m.TotalClipsAnalyzed++
	m.UpdatedAt = time.Now()

	m.ShotTypes.Add(clip.ShotType)
	m.CameraAngles.Add(clip.CameraAngle)
	m.CameraMovements.Add(clip.CameraMovement)
	m.Compositions.Add(clip.Composition)
	m.SettingTypes.Add(clip.SettingType)
	m.LightingStyles.Add(clip.LightingStyle)
	m.ColorMoods.Add(clip.ColorMood)
	m.SubjectTypes.Add(clip.SubjectType)
	m.SubjectActions.Add(clip.SubjectAction)
	m.TextPurposes.Add(clip.TextPurpose)

	m.Emotions.Add(clip.PrimaryEmotion)
	m.Emotions.Add(clip.SecondaryEmotion)
	m.EmotionalIntensities.Add(clip.EmotionalIntensity)

	m.ClipFunctions.Add(clip.ClipFunction)
	m.NarrativeRoles.Add(clip.NarrativeRole)
	m.PersuasionMechanisms.Add(clip.PersuasionMechanism)

	m.TransitionTypes.Add(clip.TransitionIn)
	m.TransitionTypes.Add(clip.TransitionOut)

	// Running mean: new = old + (d - old)/n, where n is the function's
	// post-increment occurrence count. Zero-duration clips still count
	// toward the category but do not move the mean.
	if fn := clip.ClipFunction; fn != "" && clip.DurationSeconds > 0 {
		if m.FunctionDurationAverages == nil {
			m.FunctionDurationAverages = make(map[string]float64)
		}
		count := m.ClipFunctions.Count(fn)
		old := m.FunctionDurationAverages[fn]
		m.FunctionDurationAverages[fn] = old + (clip.DurationSeconds-old)/float64(count)
	}

	if fn, emotion := clip.ClipFunction, clip.PrimaryEmotion; fn != "" && emotion != "" {
		if m.EmotionFunctionCorrelations == nil {
			m.EmotionFunctionCorrelations = make(map[string]map[string]int)
		}
		if m.EmotionFunctionCorrelations[fn] == nil {
			m.EmotionFunctionCorrelations[fn] = make(map[string]int)
		}
		m.EmotionFunctionCorrelations[fn][emotion]++
	}
}

// FinishVideo records the completion of one video's merge: the analyzed
// counter and the video's ordered clip-function sequence.
func (m *Master) FinishVideo(functionSequence []string) {
	m.VideosAnalyzed++
	m.UpdatedAt = time.Now()
	m.CommonSequences = append(m.CommonSequences, functionSequence)
}

// FunctionSequence extracts the ordered non-empty clip functions of one
// video's assembled clip list.
func FunctionSequence(clips []Clip) []string {
	var seq []string
	for i := range clips {
		if fn := clips[i].ClipFunction; fn != "" {
			seq = append(seq, fn)
		}
	}
	return seq
}

// Hints renders the current top values per category as a known-vocabulary
// block for the analysis prompt, steering the service toward consistent
// terminology.
func (m *Master) Hints() string {
	if m.TotalClipsAnalyzed == 0 {
		return "First analysis - discover all values."
	}

	categories := []struct {
		label string
		cat   *Category
	}{
		{"Shot Types", m.ShotTypes},
		{"Camera Angles", m.CameraAngles},
		{"Camera Movements", m.CameraMovements},
		{"Setting Types", m.SettingTypes},
		{"Lighting Styles", m.LightingStyles},
		{"Color Moods", m.ColorMoods},
		{"Subject Types", m.SubjectTypes},
		{"Subject Actions", m.SubjectActions},
		{"Emotions", m.Emotions},
		{"Clip Functions", m.ClipFunctions},
		{"Narrative Roles", m.NarrativeRoles},
		{"Persuasion Mechanisms", m.PersuasionMechanisms},
	}

	var lines []string
	for _, c := range categories {
		if len(c.cat.Values) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", c.label, strings.Join(c.cat.TopValues(10), ", ")))
	}
	if len(lines) == 0 {
		return "First analysis - discover all values."
	}
	return strings.Join(lines, "\n")
}

// Report renders the full human-readable ontology. The output is a report
// artifact, not a serialization format.
func (m *Master) Report() string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(&b, "%s\nMASTER CLIP ONTOLOGY\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Version: %s\n", m.Version)
	fmt.Fprintf(&b, "Videos Analyzed: %d\n", m.VideosAnalyzed)
	fmt.Fprintf(&b, "Total Clips Analyzed: %d\n", m.TotalClipsAnalyzed)
	fmt.Fprintf(&b, "Last Updated: %s\n\n", m.UpdatedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "%s\nVISUAL ONTOLOGY\n%s\n", rule, rule)
	visual := []struct {
		label string
		cat   *Category
	}{
		{"Shot Types", m.ShotTypes},
		{"Camera Angles", m.CameraAngles},
		{"Camera Movements", m.CameraMovements},
		{"Compositions", m.Compositions},
		{"Setting Types", m.SettingTypes},
		{"Lighting Styles", m.LightingStyles},
		{"Color Moods", m.ColorMoods},
		{"Subject Types", m.SubjectTypes},
		{"Subject Actions", m.SubjectActions},
		{"Text Purposes", m.TextPurposes},
	}
	for _, c := range visual {
		writeCategory(&b, c.label, c.cat)
	}

	fmt.Fprintf(&b, "\n%s\nEMOTIONAL ONTOLOGY\n%s\n", rule, rule)
	writeCategory(&b, "Emotions", m.Emotions)
	writeCategory(&b, "Intensities", m.EmotionalIntensities)

	fmt.Fprintf(&b, "\n%s\nFUNCTIONAL ONTOLOGY\n%s\n", rule, rule)
	writeCategory(&b, "Clip Functions", m.ClipFunctions)
	writeCategory(&b, "Narrative Roles", m.NarrativeRoles)
	writeCategory(&b, "Persuasion Mechanisms", m.PersuasionMechanisms)

	if len(m.TransitionTypes.Values) > 0 {
		fmt.Fprintf(&b, "\n%s\nTRANSITIONS\n%s\n", rule, rule)
		fmt.Fprintf(&b, "%s\n", m.TransitionTypes.Text())
	}

	if len(m.FunctionDurationAverages) > 0 {
		fmt.Fprintf(&b, "\n%s\nFUNCTION DURATION AVERAGES\n%s\n", rule, rule)
		type funcAvg struct {
			fn  string
			avg float64
		}
		avgs := make([]funcAvg, 0, len(m.FunctionDurationAverages))
		for fn, avg := range m.FunctionDurationAverages {
			avgs = append(avgs, funcAvg{fn, avg})
		}
		sort.Slice(avgs, func(i, j int) bool { return avgs[i].avg < avgs[j].avg })
		for _, a := range avgs {
			fmt.Fprintf(&b, "  %s: %.2fs\n", a.fn, a.avg)
		}
	}

	if len(m.EmotionFunctionCorrelations) > 0 {
		fmt.Fprintf(&b, "\n%s\nEMOTION-FUNCTION CORRELATIONS\n%s\n", rule, rule)
		fns := make([]string, 0, len(m.EmotionFunctionCorrelations))
		for fn := range m.EmotionFunctionCorrelations {
			fns = append(fns, fn)
		}
		sort.Strings(fns)
		for _, fn := range fns {
			fmt.Fprintf(&b, "  %s: %s\n", fn, topCorrelations(m.EmotionFunctionCorrelations[fn], 3))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

func writeCategory(b *strings.Builder, label string, cat *Category) {
	if len(cat.Values) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n%s\n", label, cat.Text())
}

// topCorrelations renders the n most frequent emotions as "emotion(count)",
// sorted by descending count with alphabetical tiebreak for determinism.
func topCorrelations(emotions map[string]int, n int) string {
	type pair struct {
		emotion string
		count   int
	}
	pairs := make([]pair, 0, len(emotions))
	for e, c := range emotions {
		pairs = append(pairs, pair{e, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].emotion < pairs[j].emotion
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s(%d)", p.emotion, p.count)
	}
	return strings.Join(parts, ", ")
}
