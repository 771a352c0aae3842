package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}

	tests := []struct {
		name string
		n    int
		cfg  Config
		want []Chunk
	}{
		{"empty", 0, cfg, nil},
		{"below threshold", 19, cfg, []Chunk{{0, 19}}},
		{"disabled", 1000, Config{NumWorkers: 4, MinChunkSize: 10}, []Chunk{{0, 1000}}},
		{"even split", 100, cfg, []Chunk{{0, 25}, {25, 50}, {50, 75}, {75, 100}}},
		{"min chunk wins", 30, cfg, []Chunk{{0, 10}, {10, 20}, {20, 30}}},
		{"ragged tail", 101, cfg, []Chunk{{0, 26}, {26, 52}, {52, 78}, {78, 101}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(tt.n, tt.cfg))
		})
	}
}

func TestRangeCoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 16}
	n := 10_007
	hits := make([]int32, n)

	err := Range(n, cfg, func(start, end int) error {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
		return nil
	})
	require.NoError(t, err)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestRangeZero(t *testing.T) {
	called := false
	err := Range(0, DefaultConfig(), func(_, _ int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestRangeErrors(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	boom := errors.New("boom")

	err := Range(8, cfg, func(start, _ int) error {
		if start == 4 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)

	err = Range(8, cfg, func(start, _ int) error {
		if start == 2 {
			panic("lane fault")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lane fault")
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("QUICKRELU_WORKERS", "3")
	t.Setenv("QUICKRELU_MIN_CHUNK", "0")

	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.NumWorkers)
	assert.Equal(t, 1, cfg.MinChunkSize)

	t.Setenv("QUICKRELU_WORKERS", "1")
	assert.False(t, DefaultConfig().Enabled)
}
