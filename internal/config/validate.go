package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks ranges and enums. LLM credentials are checked when a
// provider is built, since most commands never generate questions.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Server.Addr != "", "server.addr is required")
	check(c.Server.RateLimit >= 0, "server.rate_limit must not be negative")
	check(c.Server.ReadTimeout >= 0 && c.Server.WriteTimeout >= 0, "server timeouts must not be negative")

	check(slices.Contains([]string{"trace", "debug", "info", "warn", "error", "disabled"}, c.Logging.Level),
		"logging.level %q is not one of trace, debug, info, warn, error, disabled", c.Logging.Level)
	check(c.Logging.Format == "json" || c.Logging.Format == "console",
		"logging.format must be json or console, got %q", c.Logging.Format)

	check(c.Quiz.QuestionsPerQuiz >= 1, "quiz.questions_per_quiz must be at least 1")
	check(c.Quiz.GenerateCount >= c.Quiz.QuestionsPerQuiz,
		"quiz.generate_count (%d) must be at least quiz.questions_per_quiz (%d)", c.Quiz.GenerateCount, c.Quiz.QuestionsPerQuiz)

	check(c.LLM.Timeout >= 0, "llm.timeout must not be negative")
	check(c.LLM.Retry.MaxAttempts >= 1, "llm.retry.max_attempts must be at least 1")

	return errors.Join(errs...)
}
