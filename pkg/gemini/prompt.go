package gemini

// MentionExtractionPrompt instructs the model to split a daily update into
// discrete task mentions with tense and effort cues. The model only
// extracts; status, effort and row matching are decided deterministically
// downstream.
const MentionExtractionPrompt = `You are an extraction assistant for an internship journey tracking system. Your job is to split a free-form daily work update into discrete task mentions.

RULES:
1. One mention per distinct task or activity, in order of appearance.
2. Do not merge mentions from different sentences unless a conjunction clearly continues the same object ("...and finished its tests").
3. For each mention, report:
   - raw_span: the exact substring of the update that produced the mention
   - workstream: the project or category the mention names, or "" if none is stated
   - task: short descriptive task label taken from the text
   - subtask: a refining label if the text gives one, else ""
   - temporal_cue: exactly one of "past", "present_continuous", "future", "conditional", "unknown"
     * past: completed/finished/done/deployed successfully
     * present_continuous: working on/currently/in the middle of
     * future: will/plan to/next week
     * conditional: if/might/pending approval/blocked
     * unknown: no recognizable marker
   - effort_hint: any explicit time phrase ("all day", "a couple of hours", "quick fix"), else ""
   - date_hint: any explicit calendar phrase ("yesterday", "last friday", "next week", "in 3 days"), else ""
4. If the update contains no verb-bearing clause, return an empty array.
5. Return ONLY a valid JSON array. No markdown, no code fences, no explanation.

EXAMPLE INPUT:
"Today I completed the user authentication module and started database integration"

EXAMPLE OUTPUT:
[
  {
    "raw_span": "completed the user authentication module",
    "workstream": "",
    "task": "user authentication module",
    "subtask": "",
    "temporal_cue": "past",
    "effort_hint": "",
    "date_hint": "today"
  },
  {
    "raw_span": "started database integration",
    "workstream": "",
    "task": "database integration",
    "subtask": "",
    "temporal_cue": "present_continuous",
    "effort_hint": "",
    "date_hint": ""
  }
]

Now extract mentions from the following update and return ONLY the JSON array:`

// BuildMentionExtractionPrompt builds the full extraction prompt for one update.
func BuildMentionExtractionPrompt(updateText string) string {
	return MentionExtractionPrompt + "\n" + updateText
}
