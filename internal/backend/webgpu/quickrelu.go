//go:build windows

package webgpu

import "github.com/born-ml/quickrelu/internal/quickrelu"

// Forward computes output[i] = quickrelu(data[i], leak) on the GPU.
// Device failures are returned as *quickrelu.DeviceError.
func (b *Backend) Forward(output, data []float32, leak float32) error {
	if err := quickrelu.CheckForward(output, data); err != nil {
		return err
	}
	return b.launch("forward", forwardProgram(leak), leak, output, data)
}

// Backward computes the input gradient into derData on the GPU.
func (b *Backend) Backward(derData, data, derOutput []float32, leak float32) error {
	if err := quickrelu.CheckBackward(derData, data, derOutput); err != nil {
		return err
	}
	return b.launch("backward", backwardProgram(leak, b.opts.Gradient), leak, derData, data, derOutput)
}
