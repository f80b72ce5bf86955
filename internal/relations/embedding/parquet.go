package embedding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Row is one vocabulary entry as stored in Parquet.
// Rank is the frequency rank (0 = most frequent).
type Row struct {
	Rank   int32     `parquet:"rank"`
	Word   string    `parquet:"word"`
	Vector []float32 `parquet:"vector"`
}

const readBatch = 4096

// WriteParquet stores m at outPath, writing to a temp file and renaming it
// into place.
func WriteParquet(outPath string, m *Model) error {
	if m.Len() == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrFormat)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]Row, len(m.words))
	for i, w := range m.words {
		rows[i] = Row{Rank: int32(i), Word: w, Vector: m.vecs[i]}
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "embedding_row_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// LoadParquet reads a file written by WriteParquet. Rows are re-ordered by
// rank, so files produced by other writers only need the same columns.
func LoadParquet(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	all := make([]Row, 0, reader.NumRows())
	buf := make([]Row, readBatch)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := reader.Read(buf)
		all = append(all, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}

	slices.SortStableFunc(all, func(a, b Row) int { return int(a.Rank) - int(b.Rank) })
	words := make([]string, len(all))
	vectors := make([][]float32, len(all))
	for i, r := range all {
		words[i] = r.Word
		vectors[i] = r.Vector
	}
	return New(words, vectors)
}
