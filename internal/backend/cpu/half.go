package cpu

import (
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/x448/float16"
)

// Half is the host quick ReLU kernel for IEEE 754 half precision.
//
// Elements are widened to float32, evaluated with the float32 formulas and
// rounded back to the nearest half.
type Half struct {
	opts quickrelu.Options
}

var _ quickrelu.Kernel[float16.Float16] = (*Half)(nil)

// NewHalf creates a new half-precision CPU backend.
func NewHalf(opts ...quickrelu.Option) *Half {
	return &Half{opts: quickrelu.NewOptions(opts...)}
}

// Name returns the backend name.
func (h *Half) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (h *Half) Device() tensor.Device {
	return tensor.CPU
}

// Forward computes output[i] = quickrelu(data[i], leak).
func (h *Half) Forward(output, data []float16.Float16, leak float32) error {
	if err := quickrelu.CheckForward(output, data); err != nil {
		return err
	}
	if quickrelu.Leaky(leak) {
		for i, x := range data {
			output[i] = float16.Fromfloat32(quickrelu.ForwardLeaky(x.Float32(), leak))
		}
		return nil
	}
	for i, x := range data {
		output[i] = float16.Fromfloat32(quickrelu.ForwardPlain(x.Float32()))
	}
	return nil
}

// Backward computes the input gradient into derData.
func (h *Half) Backward(derData, data, derOutput []float16.Float16, leak float32) error {
	if err := quickrelu.CheckBackward(derData, data, derOutput); err != nil {
		return err
	}

	backward := func(x, dy float32) float32 {
		return quickrelu.BackwardPlain(x, dy)
	}
	if quickrelu.Leaky(leak) {
		backward = func(x, dy float32) float32 {
			return quickrelu.BackwardLeaky(x, dy, leak)
		}
		if h.opts.Gradient == quickrelu.GradientChainRule {
			backward = func(x, dy float32) float32 {
				return quickrelu.BackwardLeakyChainRule(x, dy, leak)
			}
		}
	}

	for i, x := range data {
		derData[i] = float16.Fromfloat32(backward(x.Float32(), derOutput[i].Float32()))
	}
	return nil
}
