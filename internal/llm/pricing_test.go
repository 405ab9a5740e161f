package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  float64 // input price
	}{
		{"gpt-4o-mini", 0.15},
		{"openai/gpt-4o-mini", 0.15},
		{"claude-haiku-4-5-20251001", 1},
		{"  Gemini-2.5-Flash ", 0.3},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		require.NotNil(t, c, tt.model)
		assert.InDelta(t, tt.want, c.InputPerMTok, 1e-9, tt.model)
	}
	assert.Nil(t, LookupCost("mock"))
}

func TestDefaultModelsArePriced(t *testing.T) {
	for alias, models := range map[string]map[string]string{"anthropic": anthropicModels, "gemini": geminiModels} {
		for short, id := range models {
			assert.NotNil(t, LookupCost(id), "%s alias %s -> %s has no price", alias, short, id)
		}
	}
	assert.NotNil(t, LookupCost(DefaultConfig().OpenAI.Model))
	assert.NotNil(t, LookupCost(DefaultConfig().OpenRouter.Model))
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.0035, c.Cost(1000, 500), 1e-12)
}
