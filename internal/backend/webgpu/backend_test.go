package webgpu

import (
	"runtime"
	"testing"

	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/quickrelu/kerneltest"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend returns a live backend or skips the test.
func newTestBackend(t *testing.T, opts ...quickrelu.Option) *Backend {
	t.Helper()
	backend, err := New(opts...)
	if err != nil {
		require.ErrorIs(t, err, quickrelu.ErrUnavailable)
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(backend.Release)
	return backend
}

func TestIsAvailable(t *testing.T) {
	available := IsAvailable()
	t.Logf("WebGPU available: %v", available)
	if runtime.GOOS != "windows" {
		assert.False(t, available)
	}
}

func TestNewUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("bindings are built on windows")
	}
	backend, err := New()
	assert.Nil(t, backend)
	require.ErrorIs(t, err, quickrelu.ErrUnavailable)
}

func TestNewMatchesIsAvailable(t *testing.T) {
	available := IsAvailable()
	backend, err := New()
	if err != nil {
		require.ErrorIs(t, err, quickrelu.ErrUnavailable)
		assert.Nil(t, backend)
		assert.False(t, available, "IsAvailable reported a device New could not open")
		return
	}
	defer backend.Release()
	assert.True(t, available)
}

func TestBackendInfo(t *testing.T) {
	backend := newTestBackend(t)
	assert.Equal(t, "WebGPU", backend.Name())
	assert.Equal(t, tensor.WebGPU, backend.Device())
	assert.Equal(t, quickrelu.GradientReference, backend.Gradient())
}

func TestBackendKernel(t *testing.T) {
	kerneltest.Run[float32](t, newTestBackend(t), quickrelu.GradientReference)
}

func TestBackendChainRule(t *testing.T) {
	backend := newTestBackend(t, quickrelu.WithGradient(quickrelu.GradientChainRule))
	kerneltest.Run[float32](t, backend, quickrelu.GradientChainRule)
}

func TestBackendInPlace(t *testing.T) {
	backend := newTestBackend(t)
	buf := []float32{-1, 0, 2, -0.5}
	require.NoError(t, backend.Forward(buf, buf, 2e7))
	assert.Equal(t, []float32{-2e7, 0, 2, -1e7}, buf)
}

func BenchmarkForward(b *testing.B) {
	backend, err := New()
	if err != nil {
		b.Skip("WebGPU not available on this system")
	}
	defer backend.Release()

	data := make([]float32, 1<<20)
	for i := range data {
		data[i] = float32(i%7) - 3
	}
	out := make([]float32, len(data))

	b.SetBytes(int64(len(data) * 4))
	b.ResetTimer()
	for b.Loop() {
		if err := backend.Forward(out, data, 0); err != nil {
			b.Fatal(err)
		}
	}
}
