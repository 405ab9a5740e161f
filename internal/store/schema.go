package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table layouts. The migrator diffs these against the live database and
// applies additive changes on every Open.
var (
	moviesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "release_year", Type: field.TypeInt, Nullable: true},
		{Name: "plot", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "genre", Type: field.TypeString, Default: ""},
		{Name: "director", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	moviesTable = &schema.Table{
		Name:       "movies",
		Columns:    moviesColumns,
		PrimaryKey: []*schema.Column{moviesColumns[0]},
	}

	quizQuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "movie_id", Type: field.TypeInt64},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "wrong_answer_1", Type: field.TypeString},
		{Name: "wrong_answer_2", Type: field.TypeString},
		{Name: "wrong_answer_3", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "source", Type: field.TypeString, Default: "ai"},
		{Name: "created_at", Type: field.TypeTime},
	}
	quizQuestionsTable = &schema.Table{
		Name:       "quiz_questions",
		Columns:    quizQuestionsColumns,
		PrimaryKey: []*schema.Column{quizQuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_questions_movies_questions",
				Columns:    []*schema.Column{quizQuestionsColumns[1]},
				RefColumns: []*schema.Column{moviesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quizquestion_movie_id_difficulty", Columns: []*schema.Column{quizQuestionsColumns[1], quizQuestionsColumns[7]}},
		},
	}

	quizAttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "movie_id", Type: field.TypeInt64, Nullable: true},
		{Name: "score", Type: field.TypeInt},
		{Name: "correct_count", Type: field.TypeInt, Nullable: true},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "completed_at", Type: field.TypeTime},
	}
	quizAttemptsTable = &schema.Table{
		Name:       "quiz_attempts",
		Columns:    quizAttemptsColumns,
		PrimaryKey: []*schema.Column{quizAttemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_attempts_movies_attempts",
				Columns:    []*schema.Column{quizAttemptsColumns[2]},
				RefColumns: []*schema.Column{moviesColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quizattempt_user_id_completed_at", Columns: []*schema.Column{quizAttemptsColumns[1], quizAttemptsColumns[7]}},
		},
	}

	attemptResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "attempt_id", Type: field.TypeInt64},
		{Name: "position", Type: field.TypeInt},
		{Name: "question_id", Type: field.TypeInt64, Nullable: true},
		{Name: "user_answer", Type: field.TypeString, Default: ""},
		{Name: "is_correct", Type: field.TypeBool},
	}
	attemptResultsTable = &schema.Table{
		Name:       "attempt_question_results",
		Columns:    attemptResultsColumns,
		PrimaryKey: []*schema.Column{attemptResultsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "attempt_question_results_quiz_attempts_results",
				Columns:    []*schema.Column{attemptResultsColumns[1]},
				RefColumns: []*schema.Column{quizAttemptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "attempt_question_results_quiz_questions_results",
				Columns:    []*schema.Column{attemptResultsColumns[3]},
				RefColumns: []*schema.Column{quizQuestionsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
		Indexes: []*schema.Index{
			{Name: "attemptresult_attempt_id_position", Unique: true, Columns: []*schema.Column{attemptResultsColumns[1], attemptResultsColumns[2]}},
			{Name: "attemptresult_question_id", Columns: []*schema.Column{attemptResultsColumns[3]}},
		},
	}

	achievementsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "code", Type: field.TypeString, Unique: true, Nullable: true},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
	}
	achievementsTable = &schema.Table{
		Name:       "achievements",
		Columns:    achievementsColumns,
		PrimaryKey: []*schema.Column{achievementsColumns[0]},
	}

	userAchievementsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "achievement_id", Type: field.TypeInt64},
		{Name: "earned_at", Type: field.TypeTime},
	}
	userAchievementsTable = &schema.Table{
		Name:       "user_achievements",
		Columns:    userAchievementsColumns,
		PrimaryKey: []*schema.Column{userAchievementsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_achievements_achievements_grants",
				Columns:    []*schema.Column{userAchievementsColumns[2]},
				RefColumns: []*schema.Column{achievementsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "userachievement_user_id_achievement_id", Unique: true, Columns: []*schema.Column{userAchievementsColumns[1], userAchievementsColumns[2]}},
		},
	}

	watchlistColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "movie_id", Type: field.TypeInt64},
		{Name: "added_at", Type: field.TypeTime},
	}
	watchlistTable = &schema.Table{
		Name:       "watchlist",
		Columns:    watchlistColumns,
		PrimaryKey: []*schema.Column{watchlistColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "watchlist_movies_watchers",
				Columns:    []*schema.Column{watchlistColumns[2]},
				RefColumns: []*schema.Column{moviesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "watchlist_user_id_movie_id", Unique: true, Columns: []*schema.Column{watchlistColumns[1], watchlistColumns[2]}},
		},
	}

	reviewsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeInt64},
		{Name: "movie_id", Type: field.TypeInt64},
		{Name: "rating", Type: field.TypeInt},
		{Name: "comment", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	reviewsTable = &schema.Table{
		Name:       "reviews",
		Columns:    reviewsColumns,
		PrimaryKey: []*schema.Column{reviewsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "reviews_movies_reviews",
				Columns:    []*schema.Column{reviewsColumns[2]},
				RefColumns: []*schema.Column{moviesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "review_user_id", Columns: []*schema.Column{reviewsColumns[1]}},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[4]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[1]}},
		},
	}

	catalogMetaColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString},
	}
	catalogMetaTable = &schema.Table{
		Name:       "catalog_meta",
		Columns:    catalogMetaColumns,
		PrimaryKey: []*schema.Column{catalogMetaColumns[0]},
	}

	tables = []*schema.Table{
		moviesTable,
		quizQuestionsTable,
		quizAttemptsTable,
		attemptResultsTable,
		achievementsTable,
		userAchievementsTable,
		watchlistTable,
		reviewsTable,
		llmRequestEventsTable,
		catalogMetaTable,
	}
)

func init() {
	quizQuestionsTable.ForeignKeys[0].RefTable = moviesTable
	quizAttemptsTable.ForeignKeys[0].RefTable = moviesTable
	attemptResultsTable.ForeignKeys[0].RefTable = quizAttemptsTable
	attemptResultsTable.ForeignKeys[1].RefTable = quizQuestionsTable
	userAchievementsTable.ForeignKeys[0].RefTable = achievementsTable
	watchlistTable.ForeignKeys[0].RefTable = moviesTable
	reviewsTable.ForeignKeys[0].RefTable = moviesTable
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
