package quickrelu

// Float is the constraint for element types with native arithmetic.
type Float interface {
	~float32 | ~float64
}

// Kernel is the contract every quick ReLU backend implements.
//
// The receiver is the execution context: it owns whatever device handles the
// backend needs and reports failures through the returned error. The element
// count is len(output) (or len(derData)); every other buffer must have the
// same length. A zero-length call succeeds without touching any buffer.
//
// Implementations compute point-wise, so output may alias data.
type Kernel[T any] interface {
	// Forward writes quickrelu(data[i], leak) into output[i].
	Forward(output, data []T, leak float32) error

	// Backward writes the input gradient into derData[i] from the forward
	// input data[i] (not the forward output) and the upstream gradient derOutput[i].
	Backward(derData, data, derOutput []T, leak float32) error
}

// CheckForward validates the buffer lengths of a Forward call.
func CheckForward[T any](output, data []T) error {
	if len(data) != len(output) {
		return sizeMismatch("forward", "data", len(data), len(output))
	}
	return nil
}

// CheckBackward validates the buffer lengths of a Backward call.
func CheckBackward[T any](derData, data, derOutput []T) error {
	if len(data) != len(derData) {
		return sizeMismatch("backward", "data", len(data), len(derData))
	}
	if len(derOutput) != len(derData) {
		return sizeMismatch("backward", "derOutput", len(derOutput), len(derData))
	}
	return nil
}
