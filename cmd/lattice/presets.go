package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/lattice/internal/config"
	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tGRID\tPOINTER\tLIGHTING")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				grid := fmt.Sprintf("%dx%d", cfg.Planar.Cols, cfg.Planar.Rows)
				switch {
				case cfg.Mode == config.ModeSphere:
					grid = fmt.Sprintf("%dx%d", cfg.Sphere.Cols, cfg.Sphere.Rows)
				case cfg.Planar.SpacingRatio > 0:
					grid = fmt.Sprintf("spacing %.3gw", cfg.Planar.SpacingRatio)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n", name, cfg.Mode, grid, cfg.Pointer.Enabled, cfg.Render.Lighting)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	var preset string
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "write a configuration file with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				p, err := config.GetPreset(preset)
				if err != nil {
					return err
				}
				cfg = p
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			logger.Info("config written", "path", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset instead of the defaults")
	cmd.AddCommand(initCmd)
	return cmd
}
