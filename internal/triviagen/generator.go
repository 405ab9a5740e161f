package triviagen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/HEADES94/MovieProjektFinal/internal/llm"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/metrics"
)

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []Candidate `json:"questions"`
}

func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Batch, error) {
	if strings.TrimSpace(input.Movie.Title) == "" {
		return nil, errors.New("movie title is required")
	}
	if _, ok := guidance[input.Difficulty]; !ok {
		return nil, fmt.Errorf("unsupported difficulty %q", input.Difficulty)
	}
	count := input.Count
	if count <= 0 {
		count = g.config.DefaultCount
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTriviaGen), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(input, count, g.config.MaxPriorQuestions)}},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate trivia: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse trivia batch: %w", err)
	}

	batch := &Batch{Model: resp.Model}
	// Accepted texts join the prior list so a batch cannot repeat itself.
	seen := input
	seen.PriorQuestions = append([]string(nil), input.PriorQuestions...)

	for _, c := range out.Questions {
		if len(batch.Questions) == count {
			break
		}
		if verr := g.check(c, seen); verr != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Candidate: c, Err: verr})
			continue
		}
		q := Question{
			Text:          strings.TrimSpace(c.Question),
			CorrectAnswer: strings.TrimSpace(c.CorrectAnswer),
		}
		copy(q.WrongAnswers[:], c.WrongAnswers)
		for i := range q.WrongAnswers {
			q.WrongAnswers[i] = strings.TrimSpace(q.WrongAnswers[i])
		}
		batch.Questions = append(batch.Questions, q)
		seen.PriorQuestions = append(seen.PriorQuestions, q.Text)
	}

	metrics.RecordGeneration(len(batch.Questions), batch.RejectedBy())
	logging.Ctx(ctx).Info().
		Str("movie", input.Movie.Title).
		Str("difficulty", string(input.Difficulty)).
		Int("requested", count).
		Int("accepted", len(batch.Questions)).
		Int("rejected", len(batch.Rejected)).
		Msg("trivia batch generated")
	return batch, nil
}

func (g *LLMGenerator) check(c Candidate, input Input) *ValidationError {
	for _, v := range g.config.Validators {
		if err := v.Validate(c, input); err != nil {
			return err
		}
	}
	return nil
}
