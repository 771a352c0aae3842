// Package cpu implements the quick ReLU kernel on the host CPU.
package cpu

import (
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
)

// Backend is the host quick ReLU kernel for element type T.
//
// Every call is a single synchronous pass over the buffers on the calling
// goroutine. A Backend holds no mutable state and is safe for concurrent
// use on disjoint buffers.
type Backend[T quickrelu.Float] struct {
	device tensor.Device
	opts   quickrelu.Options
}

// Compile-time checks for the supported instantiations.
var (
	_ quickrelu.Kernel[float32] = (*Backend[float32])(nil)
	_ quickrelu.Kernel[float64] = (*Backend[float64])(nil)
)

// New creates a new CPU backend.
func New[T quickrelu.Float](opts ...quickrelu.Option) *Backend[T] {
	return &Backend[T]{
		device: tensor.CPU,
		opts:   quickrelu.NewOptions(opts...),
	}
}

// Name returns the backend name.
func (cpu *Backend[T]) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *Backend[T]) Device() tensor.Device {
	return cpu.device
}

// Gradient returns the configured leaky-regime gradient mode.
func (cpu *Backend[T]) Gradient() quickrelu.Gradient {
	return cpu.opts.Gradient
}

// Forward computes output[i] = quickrelu(data[i], leak). It fails only when
// the buffer lengths differ.
func (cpu *Backend[T]) Forward(output, data []T, leak float32) error {
	if err := quickrelu.CheckForward(output, data); err != nil {
		return err
	}
	quickrelu.Apply(output, data, leak)
	return nil
}

// Backward computes the input gradient into derData.
func (cpu *Backend[T]) Backward(derData, data, derOutput []T, leak float32) error {
	if err := quickrelu.CheckBackward(derData, data, derOutput); err != nil {
		return err
	}
	quickrelu.ApplyBackward(derData, data, derOutput, leak, cpu.opts.Gradient)
	return nil
}
