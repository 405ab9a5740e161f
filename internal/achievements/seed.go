package achievements

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"golang.org/x/mod/semver"
)

// SeedRepo is the persistence Seed needs. *store.Repo satisfies it.
type SeedRepo interface {
	CatalogVersion(ctx context.Context) (string, error)
	SetCatalogVersion(ctx context.Context, version string) error
	AchievementByCode(ctx context.Context, code string) (store.Achievement, error)
	InsertAchievement(ctx context.Context, a store.Achievement) (store.Achievement, error)
	UpdateAchievement(ctx context.Context, a store.Achievement) error
}

// SeedResult reports what Seed changed.
type SeedResult struct {
	Skipped  bool
	Inserted int
	Updated  int

	// Conflicts counts rows skipped because another writer holds the same
	// code.
	Conflicts int
}

// Seed writes the built-in catalog. Rows are matched by code only; an
// existing row keeps its id and has its display text refreshed. Seeding is
// skipped when the stored catalog is at least as new as Version unless
// force is set. A unique conflict on one row is logged and skipped; any
// other error aborts.
func Seed(ctx context.Context, repo SeedRepo, force bool) (SeedResult, error) {
	stored, err := repo.CatalogVersion(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if !force && semver.IsValid(stored) && semver.Compare(stored, Version) >= 0 {
		return SeedResult{Skipped: true}, nil
	}

	var res SeedResult
	for _, d := range definitions {
		want := store.Achievement{
			Code:        d.Code,
			Name:        d.Name,
			Description: d.Description,
			Category:    string(d.Category),
		}

		row, err := repo.AchievementByCode(ctx, d.Code)
		switch {
		case errors.Is(err, store.ErrNotFound):
			_, err := repo.InsertAchievement(ctx, want)
			switch {
			case err == nil:
				res.Inserted++
			case sqlgraph.IsUniqueConstraintError(err):
				seedConflict(d.Code, err)
				res.Conflicts++
			default:
				return SeedResult{}, fmt.Errorf("seed %q: %w", d.Code, err)
			}
			continue
		case err != nil:
			return SeedResult{}, fmt.Errorf("seed %q: %w", d.Code, err)
		}

		want.ID = row.ID
		if row == want {
			continue
		}
		err = repo.UpdateAchievement(ctx, want)
		switch {
		case err == nil:
			res.Updated++
		case sqlgraph.IsUniqueConstraintError(err):
			seedConflict(d.Code, err)
			res.Conflicts++
		default:
			return SeedResult{}, fmt.Errorf("seed %q: %w", d.Code, err)
		}
	}

	if err := repo.SetCatalogVersion(ctx, Version); err != nil {
		return SeedResult{}, err
	}

	logging.Info().
		Str("version", Version).
		Str("previous", stored).
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("conflicts", res.Conflicts).
		Msg("achievement catalog seeded")
	return res, nil
}

func seedConflict(code string, err error) {
	logging.Warn().Err(err).Str("code", code).Msg("achievement seed conflict, row skipped")
}
