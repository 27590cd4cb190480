package coach

import "github.com/abhisek/tactiz/internal/llm"

// annotationSchema is the JSON schema for drill annotations.
var annotationSchema = llm.MustSchema(
	"drill-annotation",
	"Instruction and explanation for a chess training position",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goal": map[string]any{
				"type":        "string",
				"description": "One sentence telling the learner what to look for. Must not name the solution move.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Markdown explanation of why the played line works, shown after the attempt",
			},
			"motifs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
					"enum": []any{
						"fork", "pin", "skewer", "discovered_attack", "double_check",
						"back_rank", "deflection", "promotion", "sacrifice", "mating_net", "none",
					},
				},
				"description": "Tactical motifs present in the line",
			},
		},
		"required":             []any{"goal", "explanation", "motifs"},
		"additionalProperties": false,
	},
)
