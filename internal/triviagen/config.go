package triviagen

// Config controls an LLMGenerator.
type Config struct {
	// Validators run in order on every candidate; the first failure drops
	// it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// DefaultCount is used when Input.Count is zero.
	DefaultCount int

	// MaxPriorQuestions caps how many stored questions are listed in the
	// prompt. All of them are still checked by RepeatValidator.
	MaxPriorQuestions int
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctValidator{},
			&RepeatValidator{},
		},
		MaxTokens:         4096,
		Temperature:       0.7,
		DefaultCount:      10,
		MaxPriorQuestions: 30,
	}
}
