package triviagen

import "github.com/HEADES94/MovieProjektFinal/internal/llm"

// BatchSchema is the structured-output contract for a generation request.
// Per-question rules (length, answer count, distinct answers) are left to
// the validators so one bad question does not invalidate the whole batch.
var BatchSchema = &llm.Schema{
	Name:        "movie-trivia-batch",
	Description: "A list of multiple-choice trivia questions about one film",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, answerable without seeing the choices",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The single correct answer",
						},
						"wrong_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly three plausible but wrong answers",
						},
					},
					"required":             []any{"question", "correct_answer", "wrong_answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
