package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AddWatchlist puts a movie on a user's watchlist. It reports false when
// the movie was already there.
func (r *Repo) AddWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	query, args := builder().Insert("watchlist").
		Columns("user_id", "movie_id", "added_at").
		Values(userID, movieID, time.Now().UTC()).
		OnConflict(entsql.DoNothing()).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("add watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("watchlist rows affected: %w", err)
	}
	return n > 0, nil
}

// CountWatchlist returns the number of movies on a user's watchlist.
func (r *Repo) CountWatchlist(ctx context.Context, userID int64) (int, error) {
	query, args := builder().Select("COUNT(*)").
		From(entsql.Table("watchlist")).
		Where(entsql.EQ("user_id", userID)).
		Query()
	n, err := r.count(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("count watchlist: %w", err)
	}
	return n, nil
}

// InsertReview stores a review. Users may review a movie more than once.
func (r *Repo) InsertReview(ctx context.Context, userID, movieID int64, rating int, comment string) (Review, error) {
	now := time.Now().UTC()
	query, args := builder().Insert("reviews").
		Columns("user_id", "movie_id", "rating", "comment", "created_at").
		Values(userID, movieID, rating, comment, now).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return Review{}, fmt.Errorf("insert review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Review{}, fmt.Errorf("review id: %w", err)
	}
	return Review{
		ID:        id,
		UserID:    userID,
		MovieID:   movieID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

// CountReviews returns the number of reviews a user has written.
func (r *Repo) CountReviews(ctx context.Context, userID int64) (int, error) {
	query, args := builder().Select("COUNT(*)").
		From(entsql.Table("reviews")).
		Where(entsql.EQ("user_id", userID)).
		Query()
	n, err := r.count(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}
