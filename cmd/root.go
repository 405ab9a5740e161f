package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HEADES94/MovieProjektFinal/internal/config"
	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/llm"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/HEADES94/MovieProjektFinal/internal/triviagen"
)

var rootCmd = &cobra.Command{
	Use:   "moviequiz",
	Short: "Movie trivia quizzes with streaks and achievements",
	Long: "MovieQuiz generates multiple-choice trivia about your movies, scores every quiz, " +
		"tracks answer streaks and unlocks achievements. Play in the terminal or serve the HTTP API.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, 0)
	},
}

// cfg is loaded before any command runs.
var cfg *config.Config

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MOVIEQUIZ_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides MOVIEQUIZ_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(highscoresCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.Database.Path = p
	}
	logging.Init(c.Logging)
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db or the config
// (highest priority), then MOVIEQUIZ_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := cfg.Database.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// openService opens the store and builds the engine. The achievement
// catalog is seeded on every start; an up-to-date catalog is skipped.
// With withLLM the configured provider is attached; a missing key is
// reported and the engine serves stored questions only.
func openService(ctx context.Context, withLLM bool) (*engine.Service, *store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	var gen triviagen.Generator
	if withLLM {
		if err := cfg.LLM.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Quizzes will use stored questions only.")
		} else {
			provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
			if err != nil {
				st.Close()
				return nil, nil, err
			}
			tcfg := triviagen.DefaultConfig()
			tcfg.DefaultCount = cfg.Quiz.GenerateCount
			gen = triviagen.New(provider, tcfg)
		}
	}

	svc := engine.New(st, gen, engine.Config{
		GenerateCount:    cfg.Quiz.GenerateCount,
		QuestionsPerQuiz: cfg.Quiz.QuestionsPerQuiz,
	})
	if _, err := svc.Seed(ctx, false); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("seed achievements: %w", err)
	}
	return svc, st, nil
}

// describe turns engine errors into short CLI messages.
func describe(err error) error {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr
	case errors.Is(err, engine.ErrNotFound):
		return fmt.Errorf("not found: %w", err)
	case errors.Is(err, engine.ErrNoQuestions):
		return errors.New("no questions available: add a plot or configure an LLM provider")
	}
	return err
}
