// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU quick ReLU backend for float32.
//
// Each call uploads its buffers, dispatches a compute shader and reads the
// result back before returning. Device failures are reported as
// *kernel.DeviceError.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//	err = gpu.Forward(output, data, leak)
package webgpu

import (
	internalwebgpu "github.com/born-ml/quickrelu/internal/backend/webgpu"
	"github.com/born-ml/quickrelu/kernel"
)

// Backend represents the WebGPU quick ReLU kernel.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements kernel.Kernel.
var _ kernel.Kernel[float32] = (*Backend)(nil)

// New creates a new WebGPU backend. Call Release when done.
//
// Returns kernel.ErrUnavailable if WebGPU initialization fails or the
// bindings are not built for this platform.
func New(opts ...kernel.Option) (*Backend, error) {
	return internalwebgpu.New(opts...)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	var k kernel.Kernel[float32] = cpu.New[float32]()
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    k = gpu
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
