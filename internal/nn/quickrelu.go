// Package nn implements the operator-facing quick ReLU layer.
//
// The functions here sit between tensors and kernels: they validate shapes,
// flatten tensors to element buffers and hand those to a quickrelu.Kernel.
// The kernel is a type parameter, so the backend is fixed at compile time.
package nn

import (
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyTensor is returned for tensors with no elements.
	ErrEmptyTensor = errors.New("nn: empty tensor")

	// ErrShapeMismatch is returned when the tensors of one call differ in shape.
	ErrShapeMismatch = errors.New("nn: shape mismatch")

	// ErrNoForward is returned by QuickReLU.Backward before any Forward.
	ErrNoForward = errors.New("nn: backward called before forward")
)

// QuickReLUForward computes output = quickrelu(data, leak) with kernel k.
func QuickReLUForward[T tensor.DType, K quickrelu.Kernel[T]](k K, output, data *tensor.Tensor[T], leak float32) error {
	if err := checkTensors("forward", output, data); err != nil {
		return err
	}
	return errors.Wrap(k.Forward(output.Data(), data.Data(), leak), "quickrelu forward")
}

// QuickReLUBackward computes the gradient of quickrelu with respect to data
// into derData, given the upstream gradient derOutput.
func QuickReLUBackward[T tensor.DType, K quickrelu.Kernel[T]](k K, derData, data, derOutput *tensor.Tensor[T], leak float32) error {
	if err := checkTensors("backward", derData, data, derOutput); err != nil {
		return err
	}
	return errors.Wrap(k.Backward(derData.Data(), data.Data(), derOutput.Data(), leak), "quickrelu backward")
}

// checkTensors requires non-nil, non-empty tensors of identical shape.
func checkTensors[T tensor.DType](op string, ts ...*tensor.Tensor[T]) error {
	for i, t := range ts {
		if t == nil || t.NumElements() == 0 {
			return errors.Wrapf(ErrEmptyTensor, "%s: argument %d", op, i)
		}
		if i > 0 && !t.Shape().Equal(ts[0].Shape()) {
			return errors.Wrapf(ErrShapeMismatch, "%s: argument %d has shape %v, want %v", op, i, t.Shape(), ts[0].Shape())
		}
	}
	return nil
}

// QuickReLU is a quick ReLU activation module.
//
// Forward remembers its input so that Backward can compute the input
// gradient: the backward formulas depend on the forward input, not its output.
//
// Example:
//
//	act := nn.NewQuickReLU[float32](cpu.New[float32](), 0)
//	y, err := act.Forward(x)
//	dx, err := act.Backward(dy)
type QuickReLU[T tensor.DType, K quickrelu.Kernel[T]] struct {
	kernel K
	leak   float32
	input  *tensor.Tensor[T]
}

// NewQuickReLU creates a quick ReLU module evaluated by kernel.
func NewQuickReLU[T tensor.DType, K quickrelu.Kernel[T]](kernel K, leak float32) *QuickReLU[T, K] {
	return &QuickReLU[T, K]{
		kernel: kernel,
		leak:   leak,
	}
}

// Leak returns the module's leak parameter.
func (q *QuickReLU[T, K]) Leak() float32 {
	return q.leak
}

// Leaky reports whether the module runs in the leaky regime.
func (q *QuickReLU[T, K]) Leaky() bool {
	return quickrelu.Leaky(q.leak)
}

// Forward applies quick ReLU to input and returns a new tensor.
func (q *QuickReLU[T, K]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	if input == nil || input.NumElements() == 0 {
		return nil, errors.Wrap(ErrEmptyTensor, "forward: input")
	}
	output, err := tensor.New[T](input.Shape(), input.Device())
	if err != nil {
		return nil, err
	}
	if err := QuickReLUForward(q.kernel, output, input, q.leak); err != nil {
		return nil, err
	}
	q.input = input
	return output, nil
}

// Backward returns the gradient with respect to the last Forward input.
func (q *QuickReLU[T, K]) Backward(grad *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	if q.input == nil {
		return nil, ErrNoForward
	}
	if grad == nil || grad.NumElements() == 0 {
		return nil, errors.Wrap(ErrEmptyTensor, "backward: grad")
	}
	derData, err := tensor.New[T](q.input.Shape(), q.input.Device())
	if err != nil {
		return nil, err
	}
	if err := QuickReLUBackward(q.kernel, derData, q.input, grad, q.leak); err != nil {
		return nil, err
	}
	return derData, nil
}
