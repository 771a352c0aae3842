package main

import (
	"strconv"

	"github.com/born-ml/quickrelu/internal/backend/webgpu"
	"github.com/born-ml/quickrelu/internal/parallel"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List backends and whether they can run here",
		Args:  cobra.NoArgs,
		RunE:  devicesHandler,
	}
}

func devicesHandler(cmd *cobra.Command, _ []string) error {
	cfg := parallel.DefaultConfig()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Backend", "Types", "Lanes", "Available"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.Append([]string{"cpu", "float32, float64, float16", "1", "yes"})
	table.Append([]string{"multicore", "float32, float64", strconv.Itoa(cfg.NumWorkers), "yes"})
	table.Append([]string{"webgpu", "float32", "-", yesNo(webgpu.IsAvailable())})
	table.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
