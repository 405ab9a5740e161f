package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

var achievementColumns = []string{"id", "code", "name", "description", "category"}

// AchievementByCode returns the catalog row with the given code or
// ErrNotFound.
func (r *Repo) AchievementByCode(ctx context.Context, code string) (Achievement, error) {
	query, args := builder().Select(achievementColumns...).
		From(entsql.Table("achievements")).
		Where(entsql.EQ("code", code)).
		Query()
	a, err := scanAchievement(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Achievement{}, fmt.Errorf("achievement %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return Achievement{}, fmt.Errorf("get achievement %q: %w", code, err)
	}
	return a, nil
}

// InsertAchievement adds a catalog row.
func (r *Repo) InsertAchievement(ctx context.Context, a Achievement) (Achievement, error) {
	query, args := builder().Insert("achievements").
		Columns("code", "name", "description", "category").
		Values(a.Code, a.Name, a.Description, a.Category).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return Achievement{}, fmt.Errorf("insert achievement %q: %w", a.Code, err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return Achievement{}, fmt.Errorf("achievement id: %w", err)
	}
	return a, nil
}

// UpdateAchievement rewrites the code, name, description and category of
// an existing catalog row. The id never changes so grants stay attached.
func (r *Repo) UpdateAchievement(ctx context.Context, a Achievement) error {
	query, args := builder().Update("achievements").
		Set("code", a.Code).
		Set("name", a.Name).
		Set("description", a.Description).
		Set("category", a.Category).
		Where(entsql.EQ("id", a.ID)).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("update achievement %d: %w", a.ID, err)
	}
	return nil
}

// ListAchievements returns every catalog row ordered by id.
func (r *Repo) ListAchievements(ctx context.Context) ([]Achievement, error) {
	query, args := builder().Select(achievementColumns...).
		From(entsql.Table("achievements")).
		OrderBy("id").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// InsertGrant records that userID holds achievementID. An existing grant is
// reported as AlreadyGranted without failing the surrounding transaction.
func (r *Repo) InsertGrant(ctx context.Context, userID, achievementID int64, earnedAt time.Time) (GrantResult, error) {
	if earnedAt.IsZero() {
		earnedAt = time.Now()
	}
	query, args := builder().Insert("user_achievements").
		Columns("user_id", "achievement_id", "earned_at").
		Values(userID, achievementID, earnedAt.UTC()).
		Query()

	err := r.withSavepoint(ctx, func() error {
		_, err := r.exec(ctx, query, args)
		return err
	})
	switch {
	case err == nil:
		return Granted, nil
	case sqlgraph.IsUniqueConstraintError(err):
		return AlreadyGranted, nil
	default:
		return 0, fmt.Errorf("insert grant of achievement %d to user %d: %w", achievementID, userID, err)
	}
}

// UserAchievements returns the achievements a user holds, oldest grant
// first.
func (r *Repo) UserAchievements(ctx context.Context, userID int64) ([]EarnedAchievement, error) {
	query, args := builder().Select("a.id", "a.code", "a.name", "a.description", "a.category", "ua.earned_at").
		From(entsql.Table("user_achievements").As("ua")).
		Join(entsql.Table("achievements").As("a")).
		On("ua.achievement_id", "a.id").
		Where(entsql.EQ("ua.user_id", userID)).
		OrderBy("ua.earned_at", "ua.id").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user achievements: %w", err)
	}
	defer rows.Close()

	var out []EarnedAchievement
	for rows.Next() {
		var (
			e    EarnedAchievement
			code sql.NullString
		)
		if err := rows.Scan(&e.ID, &code, &e.Name, &e.Description, &e.Category, &e.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan user achievement: %w", err)
		}
		e.Code = code.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// GrantedAchievementIDs returns the ids of the achievements a user holds.
func (r *Repo) GrantedAchievementIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	query, args := builder().Select("achievement_id").
		From(entsql.Table("user_achievements")).
		Where(entsql.EQ("user_id", userID)).
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query granted achievements: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan granted achievement: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// CatalogVersion returns the version of the last seeded catalog, or "" when
// the catalog has never been seeded.
func (r *Repo) CatalogVersion(ctx context.Context) (string, error) {
	query, args := builder().Select("value").
		From(entsql.Table("catalog_meta")).
		Where(entsql.EQ("name", "achievements_version")).
		Query()
	var v string
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("catalog version: %w", err)
	}
	return v, nil
}

// SetCatalogVersion records the version of the seeded catalog.
func (r *Repo) SetCatalogVersion(ctx context.Context, version string) error {
	query, args := builder().Insert("catalog_meta").
		Columns("name", "value").
		Values("achievements_version", version).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("set catalog version: %w", err)
	}
	return nil
}

func scanAchievement(row rowScanner) (Achievement, error) {
	var (
		a    Achievement
		code sql.NullString
	)
	if err := row.Scan(&a.ID, &code, &a.Name, &a.Description, &a.Category); err != nil {
		return Achievement{}, err
	}
	a.Code = code.String
	return a, nil
}
