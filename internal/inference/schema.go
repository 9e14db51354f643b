package inference

// Schema is a response contract: the set of typed fields the service is
// asked to populate. Every field is optional at the boundary (no required
// lists) — a missing field is absent, not an error.
type Schema struct {
	// Name identifies the contract. Kebab-case, e.g. "crop-diagnosis".
	Name string

	// Description guides the model's generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// The four fixed contracts. Chat has none: it is raw text passthrough.

// DiagnosisSchema is the contract for crop disease analysis.
func DiagnosisSchema() *Schema {
	return &Schema{
		Name:        "crop-diagnosis",
		Description: "Structured crop disease analysis from a single plant image.",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"disease_detected":      map[string]any{"type": "boolean"},
				"crop_name":             map[string]any{"type": "string"},
				"disease_name":          map[string]any{"type": "string"},
				"confidence_percentage": map[string]any{"type": "number"},
				"severity": map[string]any{
					"type": "string",
					"enum": []any{"mild", "moderate", "severe", "critical"},
				},
				"symptoms": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"treatment":  map[string]any{"type": "string"},
				"prevention": map[string]any{"type": "string"},
			},
		},
	}
}

// QuizSchema is the contract for quiz question generation.
func QuizSchema() *Schema {
	return &Schema{
		Name:        "quiz-questions",
		Description: "A batch of multiple-choice farming quiz questions.",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"correctAnswer": map[string]any{"type": "number"},
							"explanation":   map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

// PriceFeedSchema is the contract for the mandi price feed.
func PriceFeedSchema() *Schema {
	return &Schema{
		Name:        "price-feed",
		Description: "Current mandi prices for major Indian crops.",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prices": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"crop":           map[string]any{"type": "string"},
							"price":          map[string]any{"type": "number"},
							"change_percent": map[string]any{"type": "number"},
							"market":         map[string]any{"type": "string"},
							"state":          map[string]any{"type": "string"},
						},
					},
				},
				"last_updated": map[string]any{"type": "string"},
			},
		},
	}
}
