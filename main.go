package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/backend"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/config"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/daily"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/evaluate"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/embedding"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/report"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/store"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/words"
)

func main() {
	var (
		seedsFlag = flag.String("seeds", "", "comma-separated board seeds (overrides SEEDS)")
		teamFlag  = flag.String("team", "", "team to give clues for: red or blue (overrides TEAM)")
		firstFlag = flag.String("first", "red", "team that goes first and gets the extra card")
		dailyDays = flag.Int("daily", 0, "evaluate the boards of the last N days instead of fixed seeds")
		clues     = flag.Bool("clues", false, "print every clue and its guesses")
		convert   = flag.String("convert", "", "write the text embeddings in EMBEDDINGS_FILE to this parquet file and exit")
		importTSV = flag.Bool("import", false, "import LEXICON_TSV into LEXICON_DB and exit")
		top       = flag.Int("leaderboard", 5, "stored best boards to show when RESULTS_DB is set")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *convert != "":
		if err := convertEmbeddings(ctx, cfg, *convert); err != nil {
			log.Fatal().Err(err).Msg("conversion failed")
		}
		return
	case *importTSV:
		if cfg.LexiconDB == "" || cfg.LexiconTSV == "" {
			log.Fatal().Msg("-import needs LEXICON_DB and LEXICON_TSV")
		}
		cfg.Backend = config.BackendLexicon
		b, err := backend.Open(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
		_ = b.Close()
		return
	}

	if *teamFlag != "" {
		cfg.Team = *teamFlag
	}
	team, err := board.ParseTeam(cfg.Team)
	if err != nil {
		log.Fatal().Err(err).Msg("bad team")
	}
	first, err := board.ParseTeam(*firstFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad first team")
	}
	seeds, err := pickSeeds(cfg, *seedsFlag, *dailyDays)
	if err != nil {
		log.Fatal().Err(err).Msg("bad seeds")
	}

	pool, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	b, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("backend unavailable")
	}
	defer b.Close()

	sum, err := evaluate.New(b.Provider, cfg.Clue()).Run(ctx, pool, board.DefaultLayout(first), seeds, team)
	if err != nil {
		log.Error().Err(err).Msg("evaluation failed")
		return
	}

	if *clues {
		for _, r := range sum.Reports {
			report.WriteClues(os.Stdout, r)
		}
	}
	report.WriteSummary(os.Stdout, sum)
	if _, ok := sum.Ratio(); !ok {
		fmt.Println(evaluate.ErrNoHints)
	}

	if cfg.ResultsDB != "" {
		if err := record(ctx, cfg.ResultsDB, b.Name, sum, *top); err != nil {
			log.Error().Err(err).Msg("failed to record results")
		}
	}
}

func pickSeeds(cfg *config.Config, flagValue string, days int) ([]uint64, error) {
	if days > 0 {
		return daily.Seeds(time.Now(), days, cfg.DailySalt), nil
	}
	if flagValue == "" {
		if len(cfg.Seeds) == 0 {
			return nil, errors.New("no seeds configured")
		}
		return cfg.Seeds, nil
	}
	var out []uint64
	for _, f := range strings.Split(flagValue, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func convertEmbeddings(ctx context.Context, cfg *config.Config, out string) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	m, _, err := embedding.Load(ctx, embedding.FormatText, cfg.EmbeddingsFile)
	if err != nil {
		return err
	}
	if err := embedding.WriteParquet(out, m); err != nil {
		return err
	}
	log.Info().Str("out", out).Int("words", m.Len()).Msg("embeddings converted")
	return nil
}

func record(ctx context.Context, dsn, backendName string, sum evaluate.Summary, top int) error {
	db, err := store.OpenSQLite(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	runID := time.Now().UTC().Format("20060102T150405.000")
	for _, r := range sum.Reports {
		err := db.Save(ctx, store.Result{
			RunID:         runID,
			Backend:       backendName,
			Team:          string(r.Team),
			Seed:          r.Seed,
			Clues:         len(r.Outcomes),
			Score:         r.Score,
			TotalPossible: r.TotalPossible,
		})
		if err != nil {
			return err
		}
	}

	rows, err := db.Leaderboard(ctx, backendName, top)
	if err != nil {
		return err
	}
	report.WriteLeaderboard(os.Stdout, backendName, rows)
	return nil
}
