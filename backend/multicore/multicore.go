// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package multicore provides a quick ReLU backend that spreads each call
// across goroutine lanes.
//
// Lane count and minimum chunk size default to QUICKRELU_WORKERS and
// QUICKRELU_MIN_CHUNK. Results are identical to the CPU backend.
package multicore

import (
	internalmulticore "github.com/born-ml/quickrelu/internal/backend/multicore"
	"github.com/born-ml/quickrelu/internal/parallel"
	"github.com/born-ml/quickrelu/kernel"
)

// Backend is the multicore quick ReLU kernel for float32 or float64.
type Backend[T kernel.Float] = internalmulticore.Backend[T]

// Config controls lane count and chunk size.
type Config = parallel.Config

// Compile-time checks that Backend implements kernel.Kernel.
var (
	_ kernel.Kernel[float32] = (*Backend[float32])(nil)
	_ kernel.Kernel[float64] = (*Backend[float64])(nil)
)

// New creates a multicore backend configured from the environment.
func New[T kernel.Float](opts ...kernel.Option) *Backend[T] {
	return internalmulticore.New[T](opts...)
}

// NewWithConfig creates a multicore backend with an explicit configuration.
func NewWithConfig[T kernel.Float](cfg Config, opts ...kernel.Option) *Backend[T] {
	return internalmulticore.NewWithConfig[T](cfg, opts...)
}

// DefaultConfig returns the environment-derived configuration.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
