package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

// Format selects an on-disk vector layout.
type Format string

const (
	FormatText    Format = "text"
	FormatParquet Format = "parquet"
)

// LoadStats is the cost of loading a model.
type LoadStats struct {
	Wall time.Duration
	CPU  time.Duration
}

// Load reads the model at path in the given format, honouring ctx's deadline.
// Any failure wraps relations.ErrUnavailable.
func Load(ctx context.Context, format Format, path string) (*Model, LoadStats, error) {
	startWall, startCPU := time.Now(), cpuTime()

	var (
		m   *Model
		err error
	)
	switch Format(strings.ToLower(string(format))) {
	case FormatText:
		m, err = LoadTextFile(ctx, path)
	case FormatParquet:
		m, err = LoadParquet(ctx, path)
	default:
		err = fmt.Errorf("unknown embedding format %q", format)
	}

	stats := LoadStats{Wall: time.Since(startWall), CPU: cpuTime() - startCPU}
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
	}

	log.Info().
		Str("path", path).
		Int("words", m.Len()).
		Int("dim", m.Dim()).
		Dur("wall", stats.Wall).
		Dur("cpu", stats.CPU).
		Msg("embedding model loaded")
	return m, stats, nil
}
