// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel exposes the quick ReLU kernel contract and numeric policy.
//
// Every backend (backend/cpu, backend/multicore, backend/webgpu) implements
// Kernel for the element types it supports. The regime is chosen once per
// call from the leak parameter:
//
//	|leak| <= LeakThreshold: output = max(x, 0)
//	|leak| >  LeakThreshold: output = max(x, 0) + leak*min(x, 0)
//
// Example:
//
//	import (
//	    "github.com/born-ml/quickrelu/backend/cpu"
//	    "github.com/born-ml/quickrelu/kernel"
//	)
//
//	func main() {
//	    var k kernel.Kernel[float32] = cpu.New[float32]()
//	    out := make([]float32, 3)
//	    _ = k.Forward(out, []float32{-2, 0, 3}, 0) // out = [0 0 3]
//	}
package kernel

import "github.com/born-ml/quickrelu/internal/quickrelu"

// Float is the constraint for element types with native arithmetic.
type Float = quickrelu.Float

// Kernel is the contract every quick ReLU backend implements.
type Kernel[T any] = quickrelu.Kernel[T]

// LeakThreshold separates the plain and leaky regimes.
const LeakThreshold = quickrelu.LeakThreshold

// Gradient selects the leaky-regime backward formula.
type Gradient = quickrelu.Gradient

// Gradient modes.
const (
	GradientReference = quickrelu.GradientReference
	GradientChainRule = quickrelu.GradientChainRule
)

// Option configures a backend.
type Option = quickrelu.Option

// DeviceError reports a device failure during a kernel call.
type DeviceError = quickrelu.DeviceError

// Errors returned by kernels.
var (
	ErrSizeMismatch = quickrelu.ErrSizeMismatch
	ErrUnavailable  = quickrelu.ErrUnavailable
)

// WithGradient selects the leaky-regime backward formula.
func WithGradient(g Gradient) Option {
	return quickrelu.WithGradient(g)
}

// Leaky reports whether leak selects the leaky regime.
func Leaky(leak float32) bool {
	return quickrelu.Leaky(leak)
}

// IsDeviceError reports whether err is, or wraps, a *DeviceError.
func IsDeviceError(err error) bool {
	return quickrelu.IsDeviceError(err)
}
