package embedding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadText reads the word2vec text format: an optional "count dim" header
// line, then one "word v1 v2 ... vN" line per word in frequency order.
func LoadText(ctx context.Context, r io.Reader) (*Model, error) {
	var (
		words   []string
		vectors [][]float32
		dim     int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && isHeader(fields) {
			dim, _ = strconv.Atoi(fields[1])
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: no vector", ErrFormat, line)
		}
		if dim == 0 {
			dim = len(fields) - 1
		}
		if len(fields)-1 != dim {
			return nil, fmt.Errorf("%w: line %d: %d dims, want %d", ErrFormat, line, len(fields)-1, dim)
		}
		vec := make([]float32, dim)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
			}
			vec[i] = float32(v)
		}
		words = append(words, fields[0])
		vectors = append(vectors, vec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(words, vectors)
}

// LoadTextFile opens path and reads it with LoadText.
func LoadTextFile(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadText(ctx, f)
}

func isHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}
