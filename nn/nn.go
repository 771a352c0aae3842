// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the quick ReLU activation layer.
//
// Example:
//
//	act := nn.NewQuickReLU[float32](cpu.New[float32](), 0)
//	y, err := act.Forward(x)
//	dx, err := act.Backward(dy)
package nn

import (
	internalnn "github.com/born-ml/quickrelu/internal/nn"
	"github.com/born-ml/quickrelu/kernel"
	"github.com/born-ml/quickrelu/tensor"
)

// QuickReLU is a quick ReLU activation module evaluated by kernel K.
type QuickReLU[T tensor.DType, K kernel.Kernel[T]] = internalnn.QuickReLU[T, K]

// Validation errors.
var (
	ErrEmptyTensor   = internalnn.ErrEmptyTensor
	ErrShapeMismatch = internalnn.ErrShapeMismatch
	ErrNoForward     = internalnn.ErrNoForward
)

// NewQuickReLU creates a quick ReLU module.
func NewQuickReLU[T tensor.DType, K kernel.Kernel[T]](k K, leak float32) *QuickReLU[T, K] {
	return internalnn.NewQuickReLU[T](k, leak)
}

// QuickReLUForward computes output = quickrelu(data, leak) with kernel k.
func QuickReLUForward[T tensor.DType, K kernel.Kernel[T]](k K, output, data *tensor.Tensor[T], leak float32) error {
	return internalnn.QuickReLUForward(k, output, data, leak)
}

// QuickReLUBackward computes the input gradient into derData.
func QuickReLUBackward[T tensor.DType, K kernel.Kernel[T]](k K, derData, data, derOutput *tensor.Tensor[T], leak float32) error {
	return internalnn.QuickReLUBackward(k, derData, data, derOutput, leak)
}
