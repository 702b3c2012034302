package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/cancerreg/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or write cancerreg configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(b)
			return err
		},
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(a.cfg, out); err != nil {
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "✓ Wrote %s\n", out)
			return err
		},
	}
	initCmd.Flags().StringVar(&out, "out", "cancerreg.yaml", "destination file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
