package cli

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/cancerreg/dataset"
	"github.com/YuminosukeSato/cancerreg/report"
)

func (a *app) newScatterCmd() *cobra.Command {
	var (
		data    string
		out     string
		columns int
	)
	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Plot every feature against the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("data") {
				a.cfg.Data = data
			}
			if cmd.Flags().Changed("columns") {
				a.cfg.ScatterColumns = columns
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ds, _, err := dataset.Load(a.cfg.Data,
				dataset.WithFeatures(a.cfg.Features),
				dataset.WithTarget(a.cfg.Target),
				dataset.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if err := report.ScatterGrid(ds, a.cfg.ScatterColumns, out); err != nil {
				return err
			}
			a.logger.Info("scatter grid written", "path", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "input CSV (.csv or .csv.xz)")
	cmd.Flags().StringVar(&out, "out", scatterFile, "output file; format follows the extension")
	cmd.Flags().IntVar(&columns, "columns", 0, "subplots per row")
	return cmd
}
