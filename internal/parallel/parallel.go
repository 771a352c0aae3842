// Package parallel splits element ranges across goroutine lanes.
package parallel

import (
	"runtime"

	"github.com/born-ml/quickrelu/internal/envconfig"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count, overridden by
// QUICKRELU_WORKERS and QUICKRELU_MIN_CHUNK.
func DefaultConfig() Config {
	n := int(envconfig.Workers())
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: max(int(envconfig.MinChunk()), 1),
	}
}

// Chunk is a half-open index range [Start, End).
type Chunk struct {
	Start, End int
}

// Plan returns the chunks Range would hand to its lanes for n items.
// It returns a single chunk when parallelism is disabled or n is too small,
// and no chunk when n is zero.
func Plan(n int, cfg Config) []Chunk {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*cfg.MinChunkSize {
		return []Chunk{{0, n}}
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	chunks := make([]Chunk, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		chunks = append(chunks, Chunk{start, min(start+chunkSize, n)})
	}
	return chunks
}

// Range executes f over the chunks of [0, n) and waits for every lane.
// It returns the first lane error; a panicking lane is reported as an error.
func Range(n int, cfg Config, f func(start, end int) error) error {
	chunks := Plan(n, cfg)
	if len(chunks) == 1 {
		return runLane(chunks[0], f)
	}

	var g errgroup.Group
	g.SetLimit(max(cfg.NumWorkers, 1))
	for _, c := range chunks {
		g.Go(func() error {
			return runLane(c, f)
		})
	}
	return g.Wait()
}

func runLane(c Chunk, f func(start, end int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("lane [%d, %d) panicked: %v", c.Start, c.End, r)
		}
	}()
	return f(c.Start, c.End)
}
