package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var movieColumns = []string{"id", "title", "release_year", "plot", "genre", "director", "created_at"}

// CreateMovie inserts a movie and returns it with its id.
func (r *Repo) CreateMovie(ctx context.Context, in MovieInput) (Movie, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Movie{}, errors.New("movie title is required")
	}

	var year any
	if in.ReleaseYear > 0 {
		year = in.ReleaseYear
	}
	now := time.Now().UTC()

	query, args := builder().Insert("movies").
		Columns("title", "release_year", "plot", "genre", "director", "created_at").
		Values(title, year, in.Plot, in.Genre, in.Director, now).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return Movie{}, fmt.Errorf("insert movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Movie{}, fmt.Errorf("movie id: %w", err)
	}

	return Movie{
		ID:          id,
		Title:       title,
		ReleaseYear: max(in.ReleaseYear, 0),
		Plot:        in.Plot,
		Genre:       in.Genre,
		Director:    in.Director,
		CreatedAt:   now,
	}, nil
}

// GetMovie returns the movie with the given id or ErrNotFound.
func (r *Repo) GetMovie(ctx context.Context, id int64) (Movie, error) {
	query, args := builder().Select(movieColumns...).
		From(entsql.Table("movies")).
		Where(entsql.EQ("id", id)).
		Query()

	m, err := scanMovie(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Movie{}, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

// ListMovies returns all movies ordered by title.
func (r *Repo) ListMovies(ctx context.Context) ([]Movie, error) {
	query, args := builder().Select(movieColumns...).
		From(entsql.Table("movies")).
		OrderBy("title", "id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (Movie, error) {
	var (
		m    Movie
		year sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.Title, &year, &m.Plot, &m.Genre, &m.Director, &m.CreatedAt); err != nil {
		return Movie{}, err
	}
	m.ReleaseYear = int(year.Int64)
	return m, nil
}
