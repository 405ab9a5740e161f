package achievements

import (
	"regexp"
	"testing"

	"golang.org/x/mod/semver"
)

func TestEveryKindHasDefinition(t *testing.T) {
	for _, k := range AllKinds() {
		d, ok := ByKind(k)
		if !ok {
			t.Fatalf("kind %d has no definition", k)
		}
		if d.Unlocked == nil {
			t.Errorf("%s has no unlock predicate", d.Code)
		}
		if d.Name == "" || d.Description == "" {
			t.Errorf("%s is missing display text", d.Code)
		}
	}
	if len(Catalog()) != len(AllKinds()) {
		t.Fatalf("catalog has %d definitions for %d kinds", len(Catalog()), len(AllKinds()))
	}
}

func TestCodesUniqueAndSnakeCase(t *testing.T) {
	snake := regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	seen := make(map[string]bool)
	for _, d := range Catalog() {
		if !snake.MatchString(d.Code) {
			t.Errorf("code %q is not snake_case", d.Code)
		}
		if seen[d.Code] {
			t.Errorf("duplicate code %q", d.Code)
		}
		seen[d.Code] = true

		got, ok := Lookup(d.Code)
		if !ok || got.Kind != d.Kind {
			t.Errorf("Lookup(%q) = %v, %v", d.Code, got.Kind, ok)
		}
	}
}

func TestRequiredCodesPresent(t *testing.T) {
	for _, code := range []string{
		"quiz_beginner", "first_watchlist", "first_review",
		"collector_10", "collector_50", "critic_10", "critic_25", "critic_50",
		"quiz_100", "perfect_quiz", "quiz_expert", "quiz_master", "first_highscore",
		"streak_5", "streak_10", "streak_master",
		"knowledge_seeker", "movie_enthusiast", "perfectionist",
	} {
		if _, ok := Lookup(code); !ok {
			t.Errorf("missing %q", code)
		}
	}
}

func TestVersionIsSemver(t *testing.T) {
	if !semver.IsValid(Version) {
		t.Fatalf("catalog version %q is not valid semver", Version)
	}
}

func TestCatalogIsCopy(t *testing.T) {
	c := Catalog()
	c[0].Code = "mutated"
	if d, _ := ByKind(KindQuizBeginner); d.Code != "quiz_beginner" {
		t.Fatalf("catalog mutated through copy: %q", d.Code)
	}
}

func TestEventCategories(t *testing.T) {
	tests := []struct {
		event Event
		want  []Category
	}{
		{EventQuizSubmitted, []Category{CategoryQuiz, CategoryStreak}},
		{EventWatchlistChanged, []Category{CategoryWatchlist}},
		{EventReviewSubmitted, []Category{CategoryReview}},
		{EventCatchUp, AllCategories()},
		{Event("bogus"), nil},
	}
	for _, tt := range tests {
		got := tt.event.Categories()
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.event, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.event, got, tt.want)
			}
		}
	}
}

func TestInCategories(t *testing.T) {
	for _, d := range InCategories(CategoryReview) {
		if d.Category != CategoryReview {
			t.Errorf("%s has category %s", d.Code, d.Category)
		}
	}
	if n := len(InCategories(CategoryReview)); n != 4 {
		t.Errorf("review achievements = %d, want 4", n)
	}
}
