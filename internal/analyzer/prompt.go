package analyzer

import "fmt"

// buildPrompt assembles the analysis instruction, injecting the known
// ontology vocabulary so terminology stays consistent across videos.
func buildPrompt(hints string) string {
	return fmt.Sprintf(analysisPrompt, hints)
}

const analysisPrompt = `You are an expert video editor analyzing a video advertisement. Identify EVERY SINGLE CLIP CHANGE and describe each using VISUAL, EMOTIONAL, and FUNCTIONAL ontology.

## CLIP DETECTION

A new clip starts when ANY of these occur:
- Camera angle/position/movement changes
- Scene or location changes
- Subject changes or significant movement
- Shot type changes (wide to close-up, etc.)
- B-roll or cutaway insertions
- Graphics/text appear/change/disappear
- Screen recordings or demos start/stop
- Any visual discontinuity

## KNOWN ONTOLOGY VALUES

%s

## OUTPUT FORMAT - JSON

{
  "video_summary": {
    "total_duration_seconds": <float>,
    "total_clips": <integer>,
    "full_transcript": "<complete verbatim transcript>"
  },
  "clips": [
    {
      "clip_number": <int>,
      "timestamp_start": "<MM:SS.mmm>",
      "timestamp_end": "<MM:SS.mmm>",
      "duration_seconds": <float>,
      "script_segment": "<EXACT words spoken in THIS clip>",

      "visual": {
        "shot_type": "<close_up|medium|wide|extreme_close_up|insert|overhead>",
        "camera_angle": "<eye_level|high_angle|low_angle|dutch|birds_eye>",
        "camera_movement": "<static|pan|tilt|zoom_in|zoom_out|tracking|handheld>",
        "composition": "<centered|rule_of_thirds|symmetrical|dynamic>",
        "setting_type": "<indoor|outdoor|studio|screen_recording|animated>",
        "setting_description": "<description>",
        "lighting_style": "<natural|studio|dramatic|soft|high_key|low_key>",
        "color_mood": "<warm|cool|neutral|vibrant|muted>",
        "subject_type": "<person|product|text_screen|graphic|b_roll>",
        "subject_description": "<who/what>",
        "subject_action": "<speaking|demonstrating|reacting|gesturing|static>",
        "text_on_screen": ["<text line 1>"],
        "text_purpose": "<headline|subtitle|cta|statistic|quote|none>"
      },

      "emotional": {
        "primary_emotion": "<curiosity|fear|desire|trust|excitement|frustration|hope|urgency>",
        "secondary_emotion": "<optional>",
        "emotional_intensity": "<subtle|moderate|strong>",
        "emotional_direction": "<positive|negative|neutral|transitioning>"
      },

      "functional": {
        "clip_function": "<hook|problem|agitation|solution|demo|benefit|proof|cta|transition>",
        "narrative_role": "<setup|build|escalate|pivot|payoff|reinforce>",
        "persuasion_mechanism": "<curiosity_gap|pain_agitation|social_proof|authority|scarcity|demonstration>",
        "persuasion_target": "<belief|emotion|action|awareness>"
      },

      "transition_in": "<cut|dissolve|fade|wipe|zoom>",
      "transition_out": "<cut|dissolve|fade|wipe|zoom>",
      "purpose_summary": "<WHY this clip exists here>"
    }
  ]
}

## REQUIREMENTS

1. Catch EVERY clip - no gaps, no overlaps
2. script_segment = EXACT verbatim words for THAT clip only
3. Timestamps: MM:SS.mmm format, end of clip N = start of clip N+1
4. purpose_summary explains WHY, not just what

OUTPUT ONLY VALID JSON.`
