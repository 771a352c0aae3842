package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/born-ml/quickrelu/internal/backend/cpu"
	"github.com/born-ml/quickrelu/internal/backend/multicore"
	"github.com/born-ml/quickrelu/internal/backend/webgpu"
	"github.com/born-ml/quickrelu/internal/envconfig"
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

type runOptions struct {
	backend   string
	dtype     string
	size      int
	leak      float32
	chainRule bool
	seed      uint64
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run forward and backward on a backend and verify against the CPU",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHandler(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", envconfig.Backend(), "Backend: cpu, multicore or webgpu (default from QUICKRELU_BACKEND)")
	cmd.Flags().StringVar(&opts.dtype, "dtype", "float32", "Element type: float32, float64 or float16")
	cmd.Flags().IntVar(&opts.size, "size", 1<<20, "Number of elements")
	cmd.Flags().Float32Var(&opts.leak, "leak", 0, "Leak parameter; |leak| > 1e7 selects the leaky regime")
	cmd.Flags().BoolVar(&opts.chainRule, "chain-rule", false, "Use the chain-rule leaky gradient (default from QUICKRELU_CHAIN_RULE)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Seed of the generated inputs")
	return cmd
}

func gradientMode(chainRule bool) quickrelu.Gradient {
	if chainRule || envconfig.ChainRule() {
		return quickrelu.GradientChainRule
	}
	return quickrelu.GradientReference
}

func runHandler(cmd *cobra.Command, opts runOptions) error {
	if opts.size < 0 {
		return errors.Errorf("size must not be negative, got %d", opts.size)
	}
	dt, ok := tensor.ParseDataType(opts.dtype)
	if !ok {
		return errors.Errorf("unknown dtype %q", opts.dtype)
	}
	opt := quickrelu.WithGradient(gradientMode(opts.chainRule))
	klog.V(1).Infof("run backend=%s dtype=%s size=%d leak=%g", opts.backend, dt, opts.size, opts.leak)

	switch {
	case opts.backend == "cpu" && dt == tensor.Float32:
		return verify(cmd, "CPU", dt, cpu.New[float32](opt), cpu.New[float32](opt), opts, uniform[float32])
	case opts.backend == "cpu" && dt == tensor.Float64:
		return verify(cmd, "CPU", dt, cpu.New[float64](opt), cpu.New[float64](opt), opts, uniform[float64])
	case opts.backend == "cpu" && dt == tensor.Float16:
		return verify(cmd, "CPU", dt, cpu.NewHalf(opt), cpu.NewHalf(opt), opts, uniformHalf)
	case opts.backend == "multicore" && dt == tensor.Float32:
		return verify(cmd, "Multicore", dt, multicore.New[float32](opt), cpu.New[float32](opt), opts, uniform[float32])
	case opts.backend == "multicore" && dt == tensor.Float64:
		return verify(cmd, "Multicore", dt, multicore.New[float64](opt), cpu.New[float64](opt), opts, uniform[float64])
	case opts.backend == "webgpu" && dt == tensor.Float32:
		gpu, err := webgpu.New(opt)
		if err != nil {
			return err
		}
		defer gpu.Release()
		return verify(cmd, "WebGPU", dt, gpu, cpu.New[float32](opt), opts, uniform[float32])
	case opts.backend == "cpu" || opts.backend == "multicore" || opts.backend == "webgpu":
		return errors.Errorf("backend %s does not support %s", opts.backend, dt)
	default:
		return errors.Errorf("unknown backend %q", opts.backend)
	}
}

func uniform[T quickrelu.Float](r *rand.Rand) T {
	return T(r.Float64()*8 - 4)
}

func uniformHalf(r *rand.Rand) float16.Float16 {
	return float16.Fromfloat32(float32(r.Float64()*8 - 4))
}

// verify runs k on generated inputs, compares both passes element by element
// with ref and reports the wall time of each pass.
func verify[T comparable](cmd *cobra.Command, name string, dt tensor.DataType, k, ref quickrelu.Kernel[T], opts runOptions, gen func(*rand.Rand) T) error {
	r := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	data := make([]T, opts.size)
	derOutput := make([]T, opts.size)
	for i := range data {
		data[i] = gen(r)
		derOutput[i] = gen(r)
	}

	output := make([]T, opts.size)
	start := time.Now()
	if err := k.Forward(output, data, opts.leak); err != nil {
		return errors.Wrap(err, "forward")
	}
	forward := time.Since(start)

	derData := make([]T, opts.size)
	start = time.Now()
	if err := k.Backward(derData, data, derOutput, opts.leak); err != nil {
		return errors.Wrap(err, "backward")
	}
	backward := time.Since(start)

	want := make([]T, opts.size)
	if err := ref.Forward(want, data, opts.leak); err != nil {
		return errors.Wrap(err, "reference forward")
	}
	forwardDiff := mismatches(want, output)
	if err := ref.Backward(want, data, derOutput, opts.leak); err != nil {
		return errors.Wrap(err, "reference backward")
	}
	backwardDiff := mismatches(want, derData)

	regime := "plain"
	if quickrelu.Leaky(opts.leak) {
		regime = "leaky"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend:   %s\n", name)
	fmt.Fprintf(out, "dtype:     %s\n", dt)
	fmt.Fprintf(out, "elements:  %s\n", humanize.Comma(int64(opts.size)))
	fmt.Fprintf(out, "regime:    %s (leak %g)\n", regime, opts.leak)
	fmt.Fprintf(out, "gradient:  %s\n", gradientMode(opts.chainRule))
	fmt.Fprintf(out, "forward:   %v (%s/s)\n", forward, throughput(2*opts.size*dt.Size(), forward))
	fmt.Fprintf(out, "backward:  %v (%s/s)\n", backward, throughput(3*opts.size*dt.Size(), backward))
	fmt.Fprintf(out, "mismatch:  forward %d, backward %d\n", forwardDiff, backwardDiff)

	if forwardDiff+backwardDiff > 0 {
		return errors.Errorf("%s differs from the host reference in %d elements", name, forwardDiff+backwardDiff)
	}
	return nil
}

// mismatches counts differing elements. NaNs compare equal to each other.
func mismatches[T comparable](want, got []T) int {
	n := 0
	for i := range want {
		if want[i] != got[i] && !(want[i] != want[i] && got[i] != got[i]) {
			n++
		}
	}
	return n
}

// throughput reports bytes moved per second.
func throughput(bytes int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(float64(bytes) / d.Seconds()))
}
