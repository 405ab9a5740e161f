package achievements

// Kind identifies one achievement variant. The set is closed: every Kind
// has exactly one catalog definition.
type Kind int

const (
	KindQuizBeginner Kind = iota
	KindPerfectQuiz
	KindQuizExpert
	KindFirstHighscore
	KindQuizMaster
	KindQuiz100
	KindKnowledgeSeeker
	KindMovieEnthusiast
	KindPerfectionist
	KindStreak5
	KindStreak10
	KindStreakMaster
	KindFirstWatchlist
	KindCollector10
	KindCollector50
	KindFirstReview
	KindCritic10
	KindCritic25
	KindCritic50

	kindCount
)

// AllKinds returns every kind in catalog order.
func AllKinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if d, ok := ByKind(k); ok {
		return d.Code
	}
	return "unknown"
}

// Category groups achievements by the activity that can unlock them.
type Category string

const (
	CategoryQuiz      Category = "quiz"
	CategoryStreak    Category = "streak"
	CategoryWatchlist Category = "watchlist"
	CategoryReview    Category = "review"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryQuiz, CategoryStreak, CategoryWatchlist, CategoryReview}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryQuiz:
		return "Quiz"
	case CategoryStreak:
		return "Streak"
	case CategoryWatchlist:
		return "Watchlist"
	case CategoryReview:
		return "Reviews"
	default:
		return string(c)
	}
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryQuiz:
		return "🎬"
	case CategoryStreak:
		return "🔥"
	case CategoryWatchlist:
		return "📺"
	case CategoryReview:
		return "📝"
	default:
		return "✦"
	}
}

// Rarity represents how hard an achievement is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}
