package nn

import (
	"testing"

	"github.com/born-ml/quickrelu/internal/backend/cpu"
	"github.com/born-ml/quickrelu/internal/backend/multicore"
	"github.com/born-ml/quickrelu/internal/parallel"
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func mustTensor[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.Tensor[T] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, tensor.CPU)
	require.NoError(t, err)
	return x
}

func TestQuickReLUForwardBackward(t *testing.T) {
	k := cpu.New[float32]()
	shape := tensor.Shape4(1, 2, 1, 1)

	data := mustTensor(t, []float32{-3, 4}, shape)
	out := mustTensor(t, make([]float32, 2), shape)
	require.NoError(t, QuickReLUForward(k, out, data, 2e7))
	assert.Equal(t, []float32{-6e7, 4}, out.Data())

	grad := mustTensor(t, []float32{1, 1}, shape)
	require.NoError(t, QuickReLUBackward(k, out, data, grad, 2e7))
	assert.Equal(t, []float32{2e7, 1}, out.Data())
}

func TestQuickReLUValidation(t *testing.T) {
	k := cpu.New[float64]()
	a := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := mustTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{4})

	require.ErrorIs(t, QuickReLUForward(k, a, b, 0), ErrShapeMismatch)
	require.ErrorIs(t, QuickReLUForward(k, (*tensor.Tensor[float64])(nil), a, 0), ErrEmptyTensor)
	require.ErrorIs(t, QuickReLUForward(k, &tensor.Tensor[float64]{}, a, 0), ErrEmptyTensor)
	require.ErrorIs(t, QuickReLUBackward(k, a, a, b, 0), ErrShapeMismatch)
}

func TestQuickReLUModule(t *testing.T) {
	act := NewQuickReLU[float64](cpu.New[float64](), 0)
	assert.False(t, act.Leaky())
	assert.Equal(t, float32(0), act.Leak())

	_, err := act.Backward(mustTensor(t, []float64{1}, tensor.Shape{1}))
	require.ErrorIs(t, err, ErrNoForward)

	x := mustTensor(t, []float64{-1, 2, 0, 3}, tensor.Shape4(2, 2, 1, 1))
	y, err := act.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 0, 3}, y.Data())
	assert.True(t, y.Shape().Equal(x.Shape()))
	assert.Equal(t, []float64{-1, 2, 0, 3}, x.Data(), "forward must not modify its input")

	dx, err := act.Backward(mustTensor(t, []float64{5, 6, 7, 8}, x.Shape()))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 6, 0, 8}, dx.Data())

	_, err = act.Backward(mustTensor(t, []float64{1, 2}, tensor.Shape{2}))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestQuickReLUModuleLeakyChainRule(t *testing.T) {
	k := multicore.NewWithConfig[float32](
		parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1},
		quickrelu.WithGradient(quickrelu.GradientChainRule),
	)
	act := NewQuickReLU[float32](k, 2e7)
	assert.True(t, act.Leaky())

	x := mustTensor(t, []float32{-3, 4, 0, -1}, tensor.Shape{4})
	y, err := act.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{-6e7, 4, 0, -2e7}, y.Data())

	dx, err := act.Backward(mustTensor(t, []float32{0.5, 1, 1, 0}, tensor.Shape{4}))
	require.NoError(t, err)
	assert.Equal(t, []float32{1e7, 1, 2e7, 0}, dx.Data())
}

func TestQuickReLUHalf(t *testing.T) {
	act := NewQuickReLU[float16.Float16](cpu.NewHalf(), 0)
	x := mustTensor(t, []float16.Float16{float16.Fromfloat32(-1), float16.Fromfloat32(2.5)}, tensor.Shape{2})

	y, err := act.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, float32(0), y.Data()[0].Float32())
	assert.Equal(t, float32(2.5), y.Data()[1].Float32())
	assert.Equal(t, tensor.Float16, y.DType())
}
