package engine

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/HEADES94/MovieProjektFinal/internal/achievements"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

// MaxCommentLength bounds review comments, in runes.
const MaxCommentLength = 2000

// WatchlistOutcome is the result of RecordWatchlistAdd.
type WatchlistOutcome struct {
	// Added is false when the movie was already on the watchlist.
	Added        bool                       `json:"added"`
	Achievements []achievements.Achievement `json:"achievements"`
}

// RecordWatchlistAdd puts a movie on a user's watchlist and grants
// watchlist achievements. Adding a movie twice is not an error.
func (s *Service) RecordWatchlistAdd(ctx context.Context, userID, movieID int64) (*WatchlistOutcome, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	if movieID <= 0 {
		return nil, invalid("movie_id", "must be positive")
	}

	out := &WatchlistOutcome{}
	err := s.store.WithTx(ctx, func(r *store.Repo) error {
		if _, err := r.GetMovie(ctx, movieID); err != nil {
			return err
		}
		added, err := r.AddWatchlist(ctx, userID, movieID)
		if err != nil {
			return err
		}
		out.Added = added
		out.Achievements, err = s.grantor.Evaluate(ctx, r, achievements.Trigger{
			Event:  achievements.EventWatchlistChanged,
			UserID: userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out.Achievements = orEmpty(out.Achievements)

	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int64("movie_id", movieID).
		Bool("added", out.Added).
		Int("granted", len(out.Achievements)).
		Msg("watchlist updated")
	return out, nil
}

// ReviewInput is a new movie review.
type ReviewInput struct {
	UserID  int64
	MovieID int64
	Rating  int // 1 to 5
	Comment string
}

// ReviewOutcome is the result of RecordReview.
type ReviewOutcome struct {
	ReviewID     int64                      `json:"review_id"`
	Achievements []achievements.Achievement `json:"achievements"`
}

// RecordReview stores a review and grants review achievements.
func (s *Service) RecordReview(ctx context.Context, in ReviewInput) (*ReviewOutcome, error) {
	if in.UserID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	if in.MovieID <= 0 {
		return nil, invalid("movie_id", "must be positive")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating", "must be between 1 and 5, got %d", in.Rating)
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, invalid("comment", "longer than %d characters", MaxCommentLength)
	}

	out := &ReviewOutcome{}
	err := s.store.WithTx(ctx, func(r *store.Repo) error {
		if _, err := r.GetMovie(ctx, in.MovieID); err != nil {
			return err
		}
		review, err := r.InsertReview(ctx, in.UserID, in.MovieID, in.Rating, comment)
		if err != nil {
			return err
		}
		out.ReviewID = review.ID
		out.Achievements, err = s.grantor.Evaluate(ctx, r, achievements.Trigger{
			Event:  achievements.EventReviewSubmitted,
			UserID: in.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out.Achievements = orEmpty(out.Achievements)

	logging.Ctx(ctx).Debug().
		Int64("user_id", in.UserID).
		Int64("movie_id", in.MovieID).
		Int("rating", in.Rating).
		Int("granted", len(out.Achievements)).
		Msg("review recorded")
	return out, nil
}

// Reevaluate replays a user's full history against every achievement and
// grants whatever is missing. Used after catalog changes.
func (s *Service) Reevaluate(ctx context.Context, userID int64) ([]achievements.Achievement, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	var granted []achievements.Achievement
	err := s.store.WithTx(ctx, func(r *store.Repo) error {
		var err error
		granted, err = s.grantor.Evaluate(ctx, r, achievements.Trigger{
			Event:  achievements.EventCatchUp,
			UserID: userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", userID).Int("granted", len(granted)).Msg("achievements re-evaluated")
	return orEmpty(granted), nil
}
