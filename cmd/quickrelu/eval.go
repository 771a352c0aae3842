package main

import (
	"strconv"

	"github.com/born-ml/quickrelu/internal/backend/cpu"
	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/x448/float16"
)

func newEvalCmd() *cobra.Command {
	var (
		leak      float32
		dtype     string
		chainRule bool
	)

	cmd := &cobra.Command{
		Use:   "eval VALUE...",
		Short: "Evaluate forward and backward on the CPU for the given inputs",
		Long: `Evaluate quick ReLU for each VALUE on the CPU backend.

The backward column uses an upstream gradient of 1 for every element.`,
		Example: "  quickrelu eval --leak 2e7 -- -3 0 4",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := make([]float64, len(args))
			for i, a := range args {
				x, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return errors.Wrapf(err, "invalid value %q", a)
				}
				xs[i] = x
			}

			dt, ok := tensor.ParseDataType(dtype)
			if !ok {
				return errors.Errorf("unknown dtype %q", dtype)
			}
			opt := quickrelu.WithGradient(gradientMode(chainRule))

			var rows [][]string
			var err error
			switch dt {
			case tensor.Float32:
				rows, err = evalRows(cpu.New[float32](opt), xs, leak,
					func(x float64) float32 { return float32(x) },
					func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) })
			case tensor.Float64:
				rows, err = evalRows(cpu.New[float64](opt), xs, leak,
					func(x float64) float64 { return x },
					func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
			case tensor.Float16:
				rows, err = evalRows(cpu.NewHalf(opt), xs, leak,
					func(x float64) float16.Float16 { return float16.Fromfloat32(float32(x)) },
					func(v float16.Float16) string { return v.String() })
			}
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"x", "forward", "backward"})
			table.SetBorder(false)
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}

	cmd.Flags().Float32Var(&leak, "leak", 0, "Leak parameter; |leak| > 1e7 selects the leaky regime")
	cmd.Flags().StringVar(&dtype, "dtype", "float32", "Element type: float32, float64 or float16")
	cmd.Flags().BoolVar(&chainRule, "chain-rule", false, "Use the chain-rule leaky gradient (default from QUICKRELU_CHAIN_RULE)")
	return cmd
}

// evalRows runs k over xs and formats input, forward and backward per element.
func evalRows[T any](k quickrelu.Kernel[T], xs []float64, leak float32, from func(float64) T, format func(T) string) ([][]string, error) {
	data := make([]T, len(xs))
	ones := make([]T, len(xs))
	for i, x := range xs {
		data[i] = from(x)
		ones[i] = from(1)
	}

	forward := make([]T, len(xs))
	if err := k.Forward(forward, data, leak); err != nil {
		return nil, err
	}
	backward := make([]T, len(xs))
	if err := k.Backward(backward, data, ones, leak); err != nil {
		return nil, err
	}

	rows := make([][]string, len(xs))
	for i := range xs {
		rows[i] = []string{format(data[i]), format(forward[i]), format(backward[i])}
	}
	return rows, nil
}
