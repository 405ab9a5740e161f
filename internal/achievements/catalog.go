// Package achievements defines the achievement catalog and grants
// achievements to users when their activity satisfies an unlock predicate.
package achievements

import "github.com/HEADES94/MovieProjektFinal/internal/quiz"

// Version identifies the built-in catalog. Bump it whenever a definition is
// added or its text changes so stored catalogs are re-seeded.
const Version = "v1.1.0"

// Definition describes one achievement. Code is the stable identity; Name
// and Description are display text only.
type Definition struct {
	Kind        Kind
	Code        string
	Name        string
	Description string
	Category    Category
	Rarity      Rarity

	// Unlocked reports whether the facts satisfy the achievement.
	Unlocked func(Facts) bool

	// LatestOnly marks predicates that look at the most recent attempt. A
	// catch-up evaluation replays them over every prefix of the history.
	LatestOnly bool
}

var definitions = []Definition{
	{
		Kind: KindQuizBeginner, Code: "quiz_beginner",
		Name: "Quiz Beginner", Description: "Complete your first quiz!",
		Category: CategoryQuiz, Rarity: RarityCommon, LatestOnly: true,
		Unlocked: func(f Facts) bool { return f.Attempts == 1 },
	},
	{
		Kind: KindPerfectQuiz, Code: "perfect_quiz",
		Name: "Perfect Quiz", Description: "Answer every question of a quiz correctly!",
		Category: CategoryQuiz, Rarity: RarityRare, LatestOnly: true,
		Unlocked: func(f Facts) bool { return f.Latest != nil && f.Latest.Perfect() },
	},
	{
		Kind: KindQuizExpert, Code: "quiz_expert",
		Name: "Quiz Expert", Description: "Complete a hard quiz with at least 4 correct answers!",
		Category: CategoryQuiz, Rarity: RarityEpic, LatestOnly: true,
		Unlocked: func(f Facts) bool {
			return f.Latest != nil && f.Latest.Difficulty == quiz.DifficultyHard && f.Latest.CorrectCount >= expertMinCorrect
		},
	},
	{
		Kind: KindFirstHighscore, Code: "first_highscore",
		Name: "First Highscore", Description: "Beat your personal best!",
		Category: CategoryQuiz, Rarity: RarityRare, LatestOnly: true,
		Unlocked: func(f Facts) bool {
			return f.Latest != nil && f.Latest.Score > 0 && f.Latest.Score > f.PriorBest
		},
	},
	{
		Kind: KindQuizMaster, Code: "quiz_master",
		Name: "Quiz Master", Description: "Score at least 400 points in 5 quizzes!",
		Category: CategoryQuiz, Rarity: RarityEpic,
		Unlocked: func(f Facts) bool { return f.HighScoring >= 5 },
	},
	{
		Kind: KindQuiz100, Code: "quiz_100",
		Name: "Quiz Veteran", Description: "Complete 100 quizzes!",
		Category: CategoryQuiz, Rarity: RarityLegendary,
		Unlocked: func(f Facts) bool { return f.Attempts >= 100 },
	},
	{
		Kind: KindKnowledgeSeeker, Code: "knowledge_seeker",
		Name: "Knowledge Seeker", Description: "Answer 100 questions correctly!",
		Category: CategoryQuiz, Rarity: RarityLegendary,
		Unlocked: func(f Facts) bool { return f.TotalCorrect >= 100 },
	},
	{
		Kind: KindMovieEnthusiast, Code: "movie_enthusiast",
		Name: "Movie Enthusiast", Description: "Complete quizzes for 10 different movies!",
		Category: CategoryQuiz, Rarity: RarityEpic,
		Unlocked: func(f Facts) bool { return f.DistinctMovies >= distinctMovieGoal },
	},
	{
		Kind: KindPerfectionist, Code: "perfectionist",
		Name: "Perfectionist", Description: "Finish 3 perfect quizzes in a row!",
		Category: CategoryQuiz, Rarity: RarityLegendary,
		Unlocked: func(f Facts) bool { return f.PerfectRun >= perfectRunTarget },
	},
	{
		Kind: KindStreak5, Code: "streak_5",
		Name: "5 Streak", Description: "Answer 5 questions in a row correctly!",
		Category: CategoryStreak, Rarity: RarityRare,
		Unlocked: func(f Facts) bool { return f.MaxStreak >= 5 },
	},
	{
		Kind: KindStreak10, Code: "streak_10",
		Name: "10 Streak", Description: "Answer 10 questions in a row correctly!",
		Category: CategoryStreak, Rarity: RarityEpic,
		Unlocked: func(f Facts) bool { return f.MaxStreak >= 10 },
	},
	{
		Kind: KindStreakMaster, Code: "streak_master",
		Name: "Streak Master", Description: "Answer 20 questions in a row correctly!",
		Category: CategoryStreak, Rarity: RarityLegendary,
		Unlocked: func(f Facts) bool { return f.MaxStreak >= 20 },
	},
	{
		Kind: KindFirstWatchlist, Code: "first_watchlist",
		Name: "First Collector", Description: "Add your first movie to the watchlist!",
		Category: CategoryWatchlist, Rarity: RarityCommon,
		Unlocked: func(f Facts) bool { return f.Watchlist >= 1 },
	},
	{
		Kind: KindCollector10, Code: "collector_10",
		Name: "Collector", Description: "Add 10 movies to the watchlist!",
		Category: CategoryWatchlist, Rarity: RarityRare,
		Unlocked: func(f Facts) bool { return f.Watchlist >= 10 },
	},
	{
		Kind: KindCollector50, Code: "collector_50",
		Name: "Mega Collector", Description: "Add 50 movies to the watchlist!",
		Category: CategoryWatchlist, Rarity: RarityEpic,
		Unlocked: func(f Facts) bool { return f.Watchlist >= 50 },
	},
	{
		Kind: KindFirstReview, Code: "first_review",
		Name: "First Critic", Description: "Write your first review!",
		Category: CategoryReview, Rarity: RarityCommon,
		Unlocked: func(f Facts) bool { return f.Reviews >= 1 },
	},
	{
		Kind: KindCritic10, Code: "critic_10",
		Name: "Critic", Description: "Write 10 reviews!",
		Category: CategoryReview, Rarity: RarityRare,
		Unlocked: func(f Facts) bool { return f.Reviews >= 10 },
	},
	{
		Kind: KindCritic25, Code: "critic_25",
		Name: "Prolific Critic", Description: "Write 25 reviews!",
		Category: CategoryReview, Rarity: RarityEpic,
		Unlocked: func(f Facts) bool { return f.Reviews >= 25 },
	},
	{
		Kind: KindCritic50, Code: "critic_50",
		Name: "Mega Critic", Description: "Write 50 reviews!",
		Category: CategoryReview, Rarity: RarityLegendary,
		Unlocked: func(f Facts) bool { return f.Reviews >= 50 },
	},
}

var (
	byKind = make(map[Kind]int, len(definitions))
	byCode = make(map[string]int, len(definitions))
)

func init() {
	for i, d := range definitions {
		byKind[d.Kind] = i
		byCode[d.Code] = i
	}
}

// Catalog returns a copy of every definition in catalog order.
func Catalog() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByKind returns the definition of k.
func ByKind(k Kind) (Definition, bool) {
	i, ok := byKind[k]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}

// Lookup returns the definition with the given code.
func Lookup(code string) (Definition, bool) {
	i, ok := byCode[code]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}

// InCategories returns the definitions belonging to any of cats, in
// catalog order.
func InCategories(cats ...Category) []Definition {
	var out []Definition
	for _, d := range definitions {
		for _, c := range cats {
			if d.Category == c {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
