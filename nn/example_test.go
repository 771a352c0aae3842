// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"fmt"

	"github.com/born-ml/quickrelu/backend/cpu"
	"github.com/born-ml/quickrelu/nn"
	"github.com/born-ml/quickrelu/tensor"
)

func ExampleQuickReLU() {
	x, _ := tensor.FromSlice([]float32{-2, -0.5, 0, 1.5, 3}, tensor.Shape{5}, tensor.CPU)
	ones, _ := tensor.FromSlice([]float32{1, 1, 1, 1, 1}, tensor.Shape{5}, tensor.CPU)

	act := nn.NewQuickReLU[float32](cpu.New[float32](), 0)
	y, _ := act.Forward(x)
	dx, _ := act.Backward(ones)

	fmt.Println(y.Data())
	fmt.Println(dx.Data())
	// Output:
	// [0 0 0 1.5 3]
	// [0 0 0 1 1]
}

func ExampleQuickReLU_leaky() {
	x, _ := tensor.FromSlice([]float32{-2, 3}, tensor.Shape{2}, tensor.CPU)
	ones, _ := tensor.FromSlice([]float32{1, 1}, tensor.Shape{2}, tensor.CPU)

	act := nn.NewQuickReLU[float32](cpu.New[float32](), 2e7)
	y, _ := act.Forward(x)
	dx, _ := act.Backward(ones)

	fmt.Println(act.Leaky())
	fmt.Println(y.Data())
	fmt.Println(dx.Data())
	// Output:
	// true
	// [-4e+07 3]
	// [2e+07 1]
}

func ExampleQuickReLUForward() {
	data, _ := tensor.FromSlice([]float64{-1, 2, -3, 4}, tensor.Shape4(2, 2, 1, 1), tensor.CPU)
	output, _ := tensor.New[float64](data.Shape(), tensor.CPU)

	if err := nn.QuickReLUForward(cpu.New[float64](), output, data, 0); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(output.Data())
	// Output:
	// [0 2 0 4]
}
