// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host CPU quick ReLU backend.
//
// The CPU backend makes one synchronous pass over the element buffers on the
// calling goroutine. It never fails on buffers of matching length.
//
// Example:
//
//	k := cpu.New[float64]()
//	err := k.Backward(derData, data, derOutput, 0)
package cpu

import (
	internalcpu "github.com/born-ml/quickrelu/internal/backend/cpu"
	"github.com/born-ml/quickrelu/kernel"
	"github.com/x448/float16"
)

// Backend is the CPU quick ReLU kernel for float32 or float64.
type Backend[T kernel.Float] = internalcpu.Backend[T]

// Half is the CPU quick ReLU kernel for float16.
type Half = internalcpu.Half

// Compile-time checks that the backends implement kernel.Kernel.
var (
	_ kernel.Kernel[float32]         = (*Backend[float32])(nil)
	_ kernel.Kernel[float64]         = (*Backend[float64])(nil)
	_ kernel.Kernel[float16.Float16] = (*Half)(nil)
)

// New creates a new CPU backend.
func New[T kernel.Float](opts ...kernel.Option) *Backend[T] {
	return internalcpu.New[T](opts...)
}

// NewHalf creates a new half-precision CPU backend.
func NewHalf(opts ...kernel.Option) *Half {
	return internalcpu.NewHalf(opts...)
}
