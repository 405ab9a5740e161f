package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

// Event names the activity that triggered an evaluation.
type Event string

const (
	EventQuizSubmitted    Event = "quiz_submitted"
	EventWatchlistChanged Event = "watchlist_changed"
	EventReviewSubmitted  Event = "review_submitted"

	// EventCatchUp evaluates every kind against the full history.
	EventCatchUp Event = "catch_up"
)

// Categories returns the categories an event can unlock.
func (e Event) Categories() []Category {
	switch e {
	case EventQuizSubmitted:
		return []Category{CategoryQuiz, CategoryStreak}
	case EventWatchlistChanged:
		return []Category{CategoryWatchlist}
	case EventReviewSubmitted:
		return []Category{CategoryReview}
	case EventCatchUp:
		return AllCategories()
	default:
		return nil
	}
}

// Trigger identifies whose achievements to evaluate and why.
type Trigger struct {
	Event  Event
	UserID int64
}

// Achievement is a newly granted achievement as shown to the user.
type Achievement struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Repo is the persistence the grantor needs. *store.Repo satisfies it;
// pass a transactional repo so grants commit with the triggering write.
type Repo interface {
	AttemptsForUser(ctx context.Context, userID int64) ([]store.Attempt, error)
	CountWatchlist(ctx context.Context, userID int64) (int, error)
	CountReviews(ctx context.Context, userID int64) (int, error)
	AchievementByCode(ctx context.Context, code string) (store.Achievement, error)
	InsertGrant(ctx context.Context, userID, achievementID int64, earnedAt time.Time) (store.GrantResult, error)
}

// GrantObserver is told about every grant attempt.
type GrantObserver func(code string, result store.GrantResult)

// Grantor evaluates unlock predicates and records grants.
type Grantor struct {
	now      func() time.Time
	observer GrantObserver
}

// Option configures a Grantor.
type Option func(*Grantor)

// WithClock overrides the grant timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Grantor) { g.now = now }
}

// WithObserver registers a callback for grant outcomes.
func WithObserver(o GrantObserver) Option {
	return func(g *Grantor) { g.observer = o }
}

// NewGrantor creates a Grantor.
func NewGrantor(opts ...Option) *Grantor {
	g := &Grantor{now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Evaluate checks every achievement the trigger's event can unlock and
// grants the satisfied ones. It returns only the achievements granted by
// this call. A grant the user already holds is skipped; any other storage
// error aborts the evaluation.
func (g *Grantor) Evaluate(ctx context.Context, repo Repo, trig Trigger) ([]Achievement, error) {
	if trig.UserID <= 0 {
		return nil, fmt.Errorf("evaluate achievements: invalid user id %d", trig.UserID)
	}
	cats := trig.Event.Categories()
	if len(cats) == 0 {
		return nil, fmt.Errorf("evaluate achievements: unknown event %q", trig.Event)
	}
	defs := InCategories(cats...)

	in, err := g.loadInputs(ctx, repo, trig.UserID, cats)
	if err != nil {
		return nil, err
	}
	facts := BuildFacts(in.attempts, in.watchlist, in.reviews)

	var granted []Achievement
	for _, d := range defs {
		unlocked := d.Unlocked(facts)
		if !unlocked && d.LatestOnly && trig.Event == EventCatchUp {
			unlocked = unlockedInHistory(d, in)
		}
		if !unlocked {
			continue
		}

		row, err := repo.AchievementByCode(ctx, d.Code)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("achievement %q is not seeded: %w", d.Code, err)
		}
		if err != nil {
			return nil, err
		}

		res, err := repo.InsertGrant(ctx, trig.UserID, row.ID, g.now())
		if err != nil {
			return nil, fmt.Errorf("grant %q: %w", d.Code, err)
		}
		if g.observer != nil {
			g.observer(d.Code, res)
		}
		if res == store.AlreadyGranted {
			logging.Debug().
				Int64("user_id", trig.UserID).
				Str("code", d.Code).
				Msg("achievement already held")
			continue
		}

		logging.Info().
			Int64("user_id", trig.UserID).
			Str("code", d.Code).
			Str("event", string(trig.Event)).
			Msg("achievement granted")
		granted = append(granted, Achievement{
			Code:        d.Code,
			Title:       d.Name,
			Description: d.Description,
		})
	}
	return granted, nil
}

type inputs struct {
	attempts  []store.Attempt
	watchlist int
	reviews   int
}

func (g *Grantor) loadInputs(ctx context.Context, repo Repo, userID int64, cats []Category) (inputs, error) {
	var in inputs
	for _, c := range cats {
		var err error
		switch c {
		case CategoryQuiz, CategoryStreak:
			if in.attempts != nil {
				continue
			}
			in.attempts, err = repo.AttemptsForUser(ctx, userID)
			if in.attempts == nil {
				in.attempts = []store.Attempt{}
			}
		case CategoryWatchlist:
			in.watchlist, err = repo.CountWatchlist(ctx, userID)
		case CategoryReview:
			in.reviews, err = repo.CountReviews(ctx, userID)
		}
		if err != nil {
			return inputs{}, fmt.Errorf("load %s facts: %w", c, err)
		}
	}
	return in, nil
}

// unlockedInHistory replays a latest-attempt predicate over every prefix of
// the attempt history.
func unlockedInHistory(d Definition, in inputs) bool {
	for i := 1; i < len(in.attempts); i++ {
		if d.Unlocked(BuildFacts(in.attempts[:i], in.watchlist, in.reviews)) {
			return true
		}
	}
	return false
}
