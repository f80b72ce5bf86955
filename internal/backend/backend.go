// Package backend builds the configured relations backend.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/config"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/embedding"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/lexicon"
)

// Backend is a loaded relations provider plus whatever it holds open.
type Backend struct {
	Provider relations.Provider
	Name     string
	close    func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open loads the backend selected by cfg within cfg.LoadTimeout. Every
// failure wraps relations.ErrUnavailable.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	switch name := strings.ToLower(cfg.Backend); name {
	case config.BackendLexicon:
		return openLexicon(ctx, cfg)
	case config.BackendEmbedding:
		m, _, err := embedding.Load(ctx, embedding.Format(cfg.EmbeddingsFormat), cfg.EmbeddingsFile)
		if err != nil {
			return nil, err
		}
		return &Backend{Provider: m, Name: name}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", relations.ErrUnavailable, cfg.Backend)
	}
}

func openLexicon(ctx context.Context, cfg *config.Config) (*Backend, error) {
	start := time.Now()

	var rels []lexicon.Relation
	if cfg.LexiconTSV != "" {
		var err error
		if rels, err = lexicon.ReadTSVFile(cfg.LexiconTSV); err != nil {
			return nil, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
		}
	}

	if cfg.LexiconDB == "" {
		mem := lexicon.FromRelations(rels)
		if mem.Len() == 0 {
			return nil, fmt.Errorf("%w: lexicon %s is empty", relations.ErrUnavailable, cfg.LexiconTSV)
		}
		log.Info().Str("tsv", cfg.LexiconTSV).Int("stems", mem.Len()).Dur("wall", time.Since(start)).Msg("lexicon loaded")
		return &Backend{Provider: mem, Name: config.BackendLexicon}, nil
	}

	db, err := lexicon.OpenSQLite(ctx, cfg.LexiconDB)
	if err != nil {
		return nil, err
	}
	if len(rels) > 0 {
		added, err := db.Import(ctx, rels)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: import: %w", relations.ErrUnavailable, err)
		}
		log.Info().Str("tsv", cfg.LexiconTSV).Int64("added", added).Msg("lexicon imported")
	}
	n, err := db.Count(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
	}
	if n == 0 {
		_ = db.Close()
		return nil, fmt.Errorf("%w: lexicon %s is empty", relations.ErrUnavailable, cfg.LexiconDB)
	}
	log.Info().Str("db", cfg.LexiconDB).Int("edges", n).Dur("wall", time.Since(start)).Msg("lexicon loaded")
	return &Backend{Provider: db, Name: config.BackendLexicon, close: db.Close}, nil
}
