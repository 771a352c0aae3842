package cpu

import (
	"testing"

	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/quickrelu/kerneltest"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestBackendFloat32(t *testing.T) {
	kerneltest.Run[float32](t, New[float32](), quickrelu.GradientReference)
}

func TestBackendFloat64(t *testing.T) {
	kerneltest.Run[float64](t, New[float64](), quickrelu.GradientReference)
}

func TestBackendChainRule(t *testing.T) {
	opt := quickrelu.WithGradient(quickrelu.GradientChainRule)
	kerneltest.Run[float32](t, New[float32](opt), quickrelu.GradientChainRule)
	kerneltest.Run[float64](t, New[float64](opt), quickrelu.GradientChainRule)
}

func TestBackendChainRuleFromEnv(t *testing.T) {
	t.Setenv("QUICKRELU_CHAIN_RULE", "true")
	b := New[float32]()
	assert.Equal(t, quickrelu.GradientChainRule, b.Gradient())
	kerneltest.Run[float32](t, b, quickrelu.GradientChainRule)
}

func TestBackendInfo(t *testing.T) {
	b := New[float32]()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
	assert.Equal(t, quickrelu.GradientReference, b.Gradient())
}

func TestForwardInPlace(t *testing.T) {
	b := New[float64]()
	buf := []float64{-1, 0, 2, -0.5}
	assert.NoError(t, b.Forward(buf, buf, 2e7))
	assert.Equal(t, []float64{-2e7, 0, 2, -1e7}, buf)
}

func BenchmarkForward(b *testing.B) {
	backend := New[float32]()
	data := make([]float32, 1<<20)
	for i := range data {
		data[i] = float32(i%7) - 3
	}
	out := make([]float32, len(data))

	b.SetBytes(int64(len(data) * 4))
	b.ResetTimer()
	for b.Loop() {
		_ = backend.Forward(out, data, 0)
	}
}

func BenchmarkBackwardLeaky(b *testing.B) {
	backend := New[float32]()
	data := make([]float32, 1<<20)
	grad := make([]float32, len(data))
	for i := range data {
		data[i] = float32(i%7) - 3
		grad[i] = 1
	}
	out := make([]float32, len(data))

	b.SetBytes(int64(len(data) * 4))
	b.ResetTimer()
	for b.Loop() {
		_ = backend.Backward(out, data, grad, 2e7)
	}
}
