package quickrelu

import "github.com/born-ml/quickrelu/internal/envconfig"

// Gradient selects the leaky-regime backward formula.
type Gradient int

const (
	// GradientReference reproduces the reference backward pass:
	// derOutput*(x > 0) + leak*(x <= 0).
	GradientReference Gradient = iota

	// GradientChainRule uses the chain-rule derivative of the leaky forward:
	// derOutput*(x > 0) + leak*derOutput*(x <= 0).
	GradientChainRule
)

// String returns a human-readable name for the gradient mode.
func (g Gradient) String() string {
	switch g {
	case GradientReference:
		return "reference"
	case GradientChainRule:
		return "chain-rule"
	default:
		return "unknown"
	}
}

// Options holds backend-independent kernel settings.
type Options struct {
	Gradient Gradient
}

// Option configures Options.
type Option func(*Options)

// WithGradient selects the leaky-regime backward formula.
func WithGradient(g Gradient) Option {
	return func(o *Options) {
		o.Gradient = g
	}
}

// NewOptions applies opts over the defaults. The default gradient is
// GradientChainRule when QUICKRELU_CHAIN_RULE is set, GradientReference otherwise.
func NewOptions(opts ...Option) Options {
	var o Options
	if envconfig.ChainRule() {
		o.Gradient = GradientChainRule
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
