// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the minimal tensor types the quick ReLU layer consumes.
//
// A Tensor is a flat element buffer with a shape and a device. Shape4 builds
// the height, width, depth, batch shape of a batch of feature maps.
package tensor

import (
	internaltensor "github.com/born-ml/quickrelu/internal/tensor"
)

// Tensor is a flat element buffer with a shape and a device.
type Tensor[T DType] = internaltensor.Tensor[T]

// DType is the constraint for supported element types.
type DType = internaltensor.DType

// DataType is runtime element type information.
type DataType = internaltensor.DataType

// Shape represents tensor dimensions.
type Shape = internaltensor.Shape

// Device represents a compute device.
type Device = internaltensor.Device

// Data types.
const (
	Float32 = internaltensor.Float32
	Float64 = internaltensor.Float64
	Float16 = internaltensor.Float16
)

// Devices.
const (
	CPU       = internaltensor.CPU
	Multicore = internaltensor.Multicore
	WebGPU    = internaltensor.WebGPU
)

// New allocates a zero-filled tensor.
func New[T DType](shape Shape, device Device) (*Tensor[T], error) {
	return internaltensor.New[T](shape, device)
}

// FromSlice wraps data without copying.
func FromSlice[T DType](data []T, shape Shape, device Device) (*Tensor[T], error) {
	return internaltensor.FromSlice(data, shape, device)
}

// Shape4 returns the height, width, depth, batch shape.
func Shape4(height, width, depth, batch int) Shape {
	return internaltensor.Shape4(height, width, depth, batch)
}
