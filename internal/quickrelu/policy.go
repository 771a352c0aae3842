package quickrelu

// LeakThreshold separates the two regimes: a leak whose magnitude is
// strictly greater selects the leaky formulas, anything else plain ReLU.
const LeakThreshold = 1e7

// Leaky reports whether leak selects the leaky regime.
func Leaky(leak float32) bool {
	if leak < 0 {
		leak = -leak
	}
	return leak > LeakThreshold
}

// positive is max(x, 0) with x returned unless x < 0, so NaN and -0 pass through.
func positive[T Float](x T) T {
	if x < 0 {
		return 0
	}
	return x
}

// negative is min(0, x) with 0 returned unless x < 0.
func negative[T Float](x T) T {
	if x < 0 {
		return x
	}
	return 0
}

// indicator converts a predicate to 1 or 0.
func indicator[T Float](b bool) T {
	if b {
		return 1
	}
	return 0
}

// ForwardPlain is the plain-regime forward formula.
func ForwardPlain[T Float](x T) T {
	return positive(x)
}

// ForwardLeaky is the leaky-regime forward formula.
func ForwardLeaky[T Float](x, leak T) T {
	return positive(x) + leak*negative(x)
}

// BackwardPlain is the plain-regime backward formula.
func BackwardPlain[T Float](x, dy T) T {
	return dy * indicator[T](x > 0)
}

// BackwardLeaky is the reference leaky-regime backward formula. The
// non-positive branch yields the raw leak, not leak*dy.
func BackwardLeaky[T Float](x, dy, leak T) T {
	return dy*indicator[T](x > 0) + leak*indicator[T](x <= 0)
}

// BackwardLeakyChainRule is the chain-rule leaky-regime backward formula.
func BackwardLeakyChainRule[T Float](x, dy, leak T) T {
	return dy*indicator[T](x > 0) + leak*dy*indicator[T](x <= 0)
}

// Apply runs the forward pass over output and data on the calling goroutine.
// Backends call it on whole buffers or on disjoint chunks of them.
func Apply[T Float](output, data []T, leak float32) {
	if Leaky(leak) {
		l := T(leak)
		for i, x := range data {
			output[i] = ForwardLeaky(x, l)
		}
		return
	}
	for i, x := range data {
		output[i] = ForwardPlain(x)
	}
}

// ApplyBackward runs the backward pass over derData, data and derOutput on
// the calling goroutine.
func ApplyBackward[T Float](derData, data, derOutput []T, leak float32, g Gradient) {
	if !Leaky(leak) {
		for i, x := range data {
			derData[i] = BackwardPlain(x, derOutput[i])
		}
		return
	}
	l := T(leak)
	if g == GradientChainRule {
		for i, x := range data {
			derData[i] = BackwardLeakyChainRule(x, derOutput[i], l)
		}
		return
	}
	for i, x := range data {
		derData[i] = BackwardLeaky(x, derOutput[i], l)
	}
}
