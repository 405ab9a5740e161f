package engine

import (
	"context"
	"errors"
	"slices"

	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/quiz"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/triviagen"
)

// ServedQuestion is a question as shown to the player. The correct
// answer is not included.
type ServedQuestion struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

// GeneratedQuiz is a quiz ready to be played.
type GeneratedQuiz struct {
	MovieID    int64            `json:"movie_id"`
	Difficulty quiz.Difficulty  `json:"difficulty"`
	Questions  []ServedQuestion `json:"questions"`

	// Generated is the number of new questions stored by this call. Zero
	// means the quiz was served from stored questions.
	Generated int `json:"generated"`
}

// QuestionIDs returns the ids of the served questions in order.
func (g *GeneratedQuiz) QuestionIDs() []int64 {
	ids := make([]int64, len(g.Questions))
	for i, q := range g.Questions {
		ids[i] = q.ID
	}
	return ids
}

// GenerateQuiz asks the generator for new questions about a movie, stores
// the accepted ones and serves a quiz from them. When generation fails or
// yields nothing, stored questions of the same difficulty are served
// instead.
func (s *Service) GenerateQuiz(ctx context.Context, movieID int64, difficulty string) (*GeneratedQuiz, error) {
	d, err := parseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	if movieID <= 0 {
		return nil, invalid("movie_id", "must be positive")
	}

	repo := s.store.Repo()
	movie, err := repo.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.generate(ctx, repo, movie, d)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logging.Ctx(ctx).Warn().Err(err).
			Int64("movie_id", movieID).
			Msg("question generation failed; serving stored questions")
	}

	pool := fresh
	if len(pool) == 0 {
		pool, err = repo.QuestionsForMovie(ctx, movieID, string(d))
		if err != nil {
			return nil, err
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	n := min(s.config.QuestionsPerQuiz, len(pool))
	if n <= 0 {
		n = len(pool)
	}
	out := &GeneratedQuiz{MovieID: movieID, Difficulty: d, Generated: len(fresh)}
	for _, q := range pool[:n] {
		out.Questions = append(out.Questions, s.serve(q))
	}
	return out, nil
}

// generate runs the model outside any transaction, then stores the
// accepted questions in one.
func (s *Service) generate(ctx context.Context, repo *store.Repo, movie store.Movie, d quiz.Difficulty) ([]store.Question, error) {
	if s.gen == nil {
		return nil, nil
	}

	existing, err := repo.QuestionsForMovie(ctx, movie.ID, "")
	if err != nil {
		return nil, err
	}
	prior := make([]string, len(existing))
	for i, q := range existing {
		prior[i] = q.Text
	}
	// Stored newest first; the prompt lists oldest first.
	slices.Reverse(prior)

	batch, err := s.gen.Generate(ctx, triviagen.Input{
		Movie: triviagen.Movie{
			Title:    movie.Title,
			Year:     movie.ReleaseYear,
			Plot:     movie.Plot,
			Genre:    movie.Genre,
			Director: movie.Director,
		},
		Difficulty:     d,
		Count:          s.config.GenerateCount,
		PriorQuestions: prior,
	})
	if err != nil {
		return nil, err
	}
	if len(batch.Questions) == 0 {
		return nil, errors.New("generator returned no usable questions")
	}

	var stored []store.Question
	err = s.store.WithTx(ctx, func(r *store.Repo) error {
		stored = stored[:0]
		for _, q := range batch.Questions {
			row, err := r.CreateQuestion(ctx, store.QuestionInput{
				MovieID:       movie.ID,
				Text:          q.Text,
				CorrectAnswer: q.CorrectAnswer,
				WrongAnswers:  q.WrongAnswers,
				Difficulty:    string(d),
				Source:        store.SourceAI,
			})
			if err != nil {
				return err
			}
			stored = append(stored, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) serve(q store.Question) ServedQuestion {
	choices := q.Choices()
	s.shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return ServedQuestion{ID: q.ID, Text: q.Text, Choices: choices}
}
