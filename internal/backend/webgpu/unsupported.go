//go:build !windows

// Package webgpu implements the quick ReLU kernel on the GPU using WebGPU.
// The go-webgpu bindings are only built on Windows; elsewhere every
// constructor reports quickrelu.ErrUnavailable.
package webgpu

import (
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/pkg/errors"
)

// Backend is the WebGPU quick ReLU kernel. It cannot be created on this platform.
type Backend struct {
	opts quickrelu.Options
}

var _ quickrelu.Kernel[float32] = (*Backend)(nil)

var errNoBindings = errors.Wrap(quickrelu.ErrUnavailable, "webgpu: bindings are not built for this platform")

// New always fails with quickrelu.ErrUnavailable on this platform.
func New(_ ...quickrelu.Option) (*Backend, error) {
	return nil, errNoBindings
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Gradient returns the configured leaky-regime gradient mode.
func (b *Backend) Gradient() quickrelu.Gradient {
	return b.opts.Gradient
}

// Forward reports quickrelu.ErrUnavailable.
func (b *Backend) Forward(_, _ []float32, _ float32) error {
	return errNoBindings
}

// Backward reports quickrelu.ErrUnavailable.
func (b *Backend) Backward(_, _, _ []float32, _ float32) error {
	return errNoBindings
}
