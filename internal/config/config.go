// Package config loads moviequiz configuration.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults
//  2. an optional YAML file (--config, $MOVIEQUIZ_CONFIG or ./moviequiz.yaml)
//  3. environment variables, after a .env file in the working directory
//     has been loaded
//
// When no LLM key is configured the vendors' own variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) are used as a fallback.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/HEADES94/MovieProjektFinal/internal/llm"
	"github.com/HEADES94/MovieProjektFinal/internal/logging"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// PathEnvVar names the config file when --config is not given.
	PathEnvVar = "MOVIEQUIZ_CONFIG"

	defaultPath = "moviequiz.yaml"
)

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Logging  logging.Config `koanf:"logging"`
	Quiz     QuizConfig     `koanf:"quiz"`
	LLM      llm.Config     `koanf:"llm"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty means the per-user data directory.
	Path string `koanf:"path"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit   int      `koanf:"rate_limit"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type QuizConfig struct {
	// GenerateCount is how many questions one generation call asks for.
	GenerateCount int `koanf:"generate_count"`

	// QuestionsPerQuiz is how many of them are served.
	QuestionsPerQuiz int `koanf:"questions_per_quiz"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit:    120,
			CORSOrigins:  []string{"*"},
		},
		Logging: logging.Config{Level: "info", Format: "console"},
		Quiz:    QuizConfig{GenerateCount: 10, QuestionsPerQuiz: 5},
		LLM:     llm.DefaultConfig(),
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path = findFile(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := splitList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = found.Provider
			cfg.LLM.Anthropic.APIKey = found.Anthropic.APIKey
			cfg.LLM.OpenAI.APIKey = found.OpenAI.APIKey
			cfg.LLM.Gemini.APIKey = found.Gemini.APIKey
			cfg.LLM.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// findFile returns explicit if set, else $MOVIEQUIZ_CONFIG, else
// ./moviequiz.yaml when it exists.
func findFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}
	return ""
}

// splitList turns a comma-separated env value into a list.
func splitList(k *koanf.Koanf, key string) error {
	s, ok := k.Get(key).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(key, out); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// envKeys maps environment variables to config keys. Variables not listed
// are ignored.
var envKeys = map[string]string{
	"MOVIEQUIZ_DB":                      "database.path",
	"MOVIEQUIZ_ADDR":                    "server.addr",
	"MOVIEQUIZ_RATE_LIMIT":              "server.rate_limit",
	"MOVIEQUIZ_CORS_ORIGINS":            "server.cors_origins",
	"MOVIEQUIZ_LOG_LEVEL":               "logging.level",
	"MOVIEQUIZ_LOG_FORMAT":              "logging.format",
	"MOVIEQUIZ_QUIZ_GENERATE_COUNT":     "quiz.generate_count",
	"MOVIEQUIZ_QUIZ_QUESTIONS_PER_QUIZ": "quiz.questions_per_quiz",
	"MOVIEQUIZ_LLM_PROVIDER":            "llm.provider",
	"MOVIEQUIZ_LLM_TIMEOUT":             "llm.timeout",
	"MOVIEQUIZ_ANTHROPIC_API_KEY":       "llm.anthropic.api_key",
	"MOVIEQUIZ_ANTHROPIC_MODEL":         "llm.anthropic.model",
	"MOVIEQUIZ_OPENAI_API_KEY":          "llm.openai.api_key",
	"MOVIEQUIZ_OPENAI_MODEL":            "llm.openai.model",
	"MOVIEQUIZ_OPENAI_BASE_URL":         "llm.openai.base_url",
	"MOVIEQUIZ_GEMINI_API_KEY":          "llm.gemini.api_key",
	"MOVIEQUIZ_GEMINI_MODEL":            "llm.gemini.model",
	"MOVIEQUIZ_OPENROUTER_API_KEY":      "llm.openrouter.api_key",
	"MOVIEQUIZ_OPENROUTER_MODEL":        "llm.openrouter.model",
}

// envValue maps one variable. Empty values are skipped so an exported but
// blank variable does not clear a default.
func envValue(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return envKeys[strings.ToUpper(name)], value
}
