// Package kerneltest holds the behavioral tests every quick ReLU backend must pass.
package kerneltest

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sizes are the element counts exercised by Run.
var Sizes = []int{1, 1024, 1_000_003}

// Run exercises k against the reference formulas. gradient must be the mode
// k was built with.
func Run[T quickrelu.Float](t *testing.T, k quickrelu.Kernel[T], gradient quickrelu.Gradient) {
	t.Run("PlainForward", func(t *testing.T) {
		out := make([]T, 3)
		require.NoError(t, k.Forward(out, []T{-2, 0, 3}, 0))
		assert.Equal(t, []T{0, 0, 3}, out)
	})

	t.Run("PlainBackward", func(t *testing.T) {
		out := make([]T, 2)
		require.NoError(t, k.Backward(out, []T{-1, 2}, []T{5, 7}, 0))
		assert.Equal(t, []T{0, 7}, out)
	})

	t.Run("LeakyForward", func(t *testing.T) {
		out := make([]T, 2)
		require.NoError(t, k.Forward(out, []T{-3, 4}, 2e7))
		assert.Equal(t, []T{-6e7, 4}, out)
	})

	t.Run("LeakyBackward", func(t *testing.T) {
		out := make([]T, 3)
		require.NoError(t, k.Backward(out, []T{-3, 4, 0}, []T{1, 1, 0.5}, 2e7))
		if gradient == quickrelu.GradientChainRule {
			assert.Equal(t, []T{2e7, 1, 1e7}, out)
		} else {
			assert.Equal(t, []T{2e7, 1, 2e7}, out, "non-positive branch yields the raw leak")
		}
	})

	t.Run("ThresholdBoundary", func(t *testing.T) {
		data := []T{-3, 4}
		out := make([]T, 2)

		require.NoError(t, k.Forward(out, data, quickrelu.LeakThreshold))
		assert.Equal(t, []T{0, 4}, out, "leak at the threshold selects plain ReLU")

		above := math.Nextafter32(quickrelu.LeakThreshold, float32(math.Inf(1)))
		require.NoError(t, k.Forward(out, data, above))
		assert.Equal(t, []T{-3 * T(above), 4}, out, "leak above the threshold selects the leaky formula")

		require.NoError(t, k.Forward(out, data, -above))
		assert.Equal(t, []T{3 * T(above), 4}, out, "the threshold applies to the magnitude")
	})

	t.Run("Idempotent", func(t *testing.T) {
		data := randomData[T](4096, 1)
		first := make([]T, len(data))
		second := make([]T, len(data))
		require.NoError(t, k.Forward(first, data, 3e7))
		require.NoError(t, k.Forward(second, data, 3e7))
		assert.Equal(t, first, second)
	})

	t.Run("ZeroSize", func(t *testing.T) {
		const sentinel = 42
		out := []T{sentinel}
		require.NoError(t, k.Forward(out[:0], []T{}, 0))
		require.NoError(t, k.Forward(out[:0], []T{}, 2e7))
		require.NoError(t, k.Backward(out[:0], []T{}, []T{}, 2e7))
		require.NoError(t, k.Forward(nil, nil, 0))
		assert.Equal(t, T(sentinel), out[0])
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		require.ErrorIs(t, k.Forward(make([]T, 3), make([]T, 2), 0), quickrelu.ErrSizeMismatch)
		require.ErrorIs(t, k.Backward(make([]T, 3), make([]T, 3), make([]T, 4), 0), quickrelu.ErrSizeMismatch)
	})

	for _, n := range Sizes {
		for _, leak := range []float32{0, 0.25, 2e7} {
			t.Run(sizeName(n, leak), func(t *testing.T) {
				if n > 100_000 && testing.Short() {
					t.Skip("large buffer skipped in short mode")
				}
				data := randomData[T](n, int64(n))
				derOutput := randomData[T](n, int64(n)+1)

				out := make([]T, n)
				require.NoError(t, k.Forward(out, data, leak))
				want := make([]T, n)
				quickrelu.Apply(want, data, leak)
				assertSame(t, want, out)

				require.NoError(t, k.Backward(out, data, derOutput, leak))
				quickrelu.ApplyBackward(want, data, derOutput, leak, gradient)
				assertSame(t, want, out)
			})
		}
	}
}

func sizeName(n int, leak float32) string {
	regime := "plain"
	if quickrelu.Leaky(leak) {
		regime = "leaky"
	}
	return regime + "/" + strconv.Itoa(n)
}

// randomData returns n values in [-8, 8) with about one in sixteen exact zeros.
func randomData[T quickrelu.Float](n int, seed int64) []T {
	r := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	data := make([]T, n)
	for i := range data {
		if r.IntN(16) == 0 {
			continue
		}
		data[i] = T(r.Float64()*16 - 8)
	}
	return data
}

// assertSame reports the first differing element instead of dumping whole
// buffers. NaNs compare equal to each other.
func assertSame[T quickrelu.Float](t *testing.T, want, got []T) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if want[i] != got[i] && !(want[i] != want[i] && got[i] != got[i]) {
			t.Fatalf("element %d: want %v, got %v", i, want[i], got[i])
		}
	}
}
