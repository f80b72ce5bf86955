// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/clue"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/embedding"
)

var ErrInvalid = errors.New("config: invalid")

const (
	BackendLexicon   = "lexicon"
	BackendEmbedding = "embedding"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	WordsFile string `env:"WORDS_FILE"`

	Backend          string        `env:"BACKEND" env-default:"lexicon"`
	LexiconDB        string        `env:"LEXICON_DB"`
	LexiconTSV       string        `env:"LEXICON_TSV"`
	EmbeddingsFile   string        `env:"EMBEDDINGS_FILE"`
	EmbeddingsFormat string        `env:"EMBEDDINGS_FORMAT" env-default:"text"`
	LoadTimeout      time.Duration `env:"LOAD_TIMEOUT" env-default:"5m"`

	TopN           int      `env:"TOP_N" env-default:"10"`
	VocabLimit     int      `env:"VOCAB_LIMIT" env-default:"5000"`
	ScoreThreshold float64  `env:"SCORE_THRESHOLD" env-default:"0"`
	DenyPrefixes   []string `env:"DENY_PREFIXES" env-separator:"," env-default:"afp"`
	Workers        int      `env:"WORKERS" env-default:"1"`

	Team      string   `env:"TEAM" env-default:"red"`
	Seeds     []uint64 `env:"SEEDS" env-separator:"," env-default:"1,2,3,4,5"`
	DailySalt string   `env:"DAILY_SALT"`
	ResultsDB string   `env:"RESULTS_DB"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendLexicon:
		if c.LexiconDB == "" && c.LexiconTSV == "" {
			return fmt.Errorf("%w: lexicon backend needs LEXICON_DB or LEXICON_TSV", ErrInvalid)
		}
	case BackendEmbedding:
		if c.EmbeddingsFile == "" {
			return fmt.Errorf("%w: embedding backend needs EMBEDDINGS_FILE", ErrInvalid)
		}
		switch embedding.Format(strings.ToLower(c.EmbeddingsFormat)) {
		case embedding.FormatText, embedding.FormatParquet:
		default:
			return fmt.Errorf("%w: EMBEDDINGS_FORMAT %q", ErrInvalid, c.EmbeddingsFormat)
		}
	default:
		return fmt.Errorf("%w: BACKEND %q", ErrInvalid, c.Backend)
	}
	if _, err := board.ParseTeam(c.Team); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.TopN <= 0 || c.Workers <= 0 || c.LoadTimeout <= 0 {
		return fmt.Errorf("%w: TOP_N, WORKERS and LOAD_TIMEOUT must be positive", ErrInvalid)
	}
	return nil
}

// Clue maps the search settings onto a clue.Config.
func (c *Config) Clue() clue.Config {
	cfg := clue.DefaultConfig()
	cfg.TopN = c.TopN
	cfg.VocabLimit = c.VocabLimit
	cfg.Threshold = c.ScoreThreshold
	cfg.DenyPrefixes = c.DenyPrefixes
	cfg.Workers = c.Workers
	return cfg
}
