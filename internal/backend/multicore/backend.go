// Package multicore implements the quick ReLU kernel across goroutine lanes.
//
// The element range is split into contiguous chunks, one per lane, and every
// lane evaluates the same per-element formulas as the CPU backend. Elements
// are independent, so results are identical to the sequential backend.
package multicore

import (
	"github.com/born-ml/quickrelu/internal/parallel"
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"k8s.io/klog/v2"
)

// Backend is the multicore quick ReLU kernel for element type T.
type Backend[T quickrelu.Float] struct {
	cfg  parallel.Config
	opts quickrelu.Options
}

var (
	_ quickrelu.Kernel[float32] = (*Backend[float32])(nil)
	_ quickrelu.Kernel[float64] = (*Backend[float64])(nil)
)

// New creates a multicore backend configured from the environment.
func New[T quickrelu.Float](opts ...quickrelu.Option) *Backend[T] {
	return NewWithConfig[T](parallel.DefaultConfig(), opts...)
}

// NewWithConfig creates a multicore backend with an explicit lane configuration.
func NewWithConfig[T quickrelu.Float](cfg parallel.Config, opts ...quickrelu.Option) *Backend[T] {
	return &Backend[T]{
		cfg:  cfg,
		opts: quickrelu.NewOptions(opts...),
	}
}

// Name returns the backend name.
func (b *Backend[T]) Name() string {
	return "Multicore"
}

// Device returns the compute device.
func (b *Backend[T]) Device() tensor.Device {
	return tensor.Multicore
}

// Config returns the lane configuration.
func (b *Backend[T]) Config() parallel.Config {
	return b.cfg
}

// Forward computes output[i] = quickrelu(data[i], leak) and returns once
// every lane has finished.
func (b *Backend[T]) Forward(output, data []T, leak float32) error {
	if err := quickrelu.CheckForward(output, data); err != nil {
		return err
	}
	return b.run("forward", len(output), func(start, end int) error {
		quickrelu.Apply(output[start:end], data[start:end], leak)
		return nil
	})
}

// Backward computes the input gradient into derData and returns once every
// lane has finished.
func (b *Backend[T]) Backward(derData, data, derOutput []T, leak float32) error {
	if err := quickrelu.CheckBackward(derData, data, derOutput); err != nil {
		return err
	}
	return b.run("backward", len(derData), func(start, end int) error {
		quickrelu.ApplyBackward(derData[start:end], data[start:end], derOutput[start:end], leak, b.opts.Gradient)
		return nil
	})
}

func (b *Backend[T]) run(op string, n int, lane func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	if klog.V(2).Enabled() {
		klog.Infof("multicore %s: %d elements over %d lanes", op, n, len(parallel.Plan(n, b.cfg)))
	}
	if err := parallel.Range(n, b.cfg, lane); err != nil {
		return &quickrelu.DeviceError{Backend: b.Name(), Op: op, Err: err}
	}
	return nil
}
