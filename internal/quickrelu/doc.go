// Package quickrelu defines the quick ReLU kernel contract and the numeric
// policy shared by every backend.
//
// Quick ReLU is a parametrized rectifier. Its single scalar parameter, the
// leak, selects one of two regimes once per call:
//
//   - plain regime (|leak| <= LeakThreshold): output = max(x, 0)
//   - leaky regime (|leak| > LeakThreshold):  output = max(x, 0) + leak*min(x, 0)
//
// Backends (CPU, multicore, WebGPU) implement Kernel for the element types
// they support. The per-element formulas live here so that every backend
// evaluates exactly the same expressions.
//
// # Gradient
//
// In the leaky regime the reference backward pass credits the raw leak on
// the non-positive branch instead of leak*derOutput:
//
//	derData = derOutput*(x > 0) + leak*(x <= 0)
//
// This is reproduced by default (GradientReference). GradientChainRule
// selects the chain-rule derivative derOutput*(x > 0) + leak*derOutput*(x <= 0).
package quickrelu
