package main

import (
	"fmt"

	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/host/ebitenhost"
	"github.com/san-kum/lattice/internal/viz"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		o          overrides
		hostName   string
		win        windowOptions
		fullscreen bool
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "open the lattice in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := o.resolve(cmd, args)
			if err != nil {
				return err
			}
			run, ok := hosts[hostName]
			if !ok {
				return fmt.Errorf("unknown host %q (available: %v)", hostName, hostNames())
			}
			win.Title = ebitenhost.DefaultOptions().Title + " · " + name
			win.Fullscreen = fullscreen
			logger.Info("starting", "preset", name, "mode", cfg.Mode, "host", hostName)
			return run(engine.New(cfg, capabilities()), win, logger)
		},
	}
	defaults := ebitenhost.DefaultOptions()
	o.register(cmd)
	cmd.Flags().StringVar(&hostName, "host", "ebiten", "window backend")
	cmd.Flags().IntVar(&win.Width, "width", defaults.Width, "window width")
	cmd.Flags().IntVar(&win.Height, "height", defaults.Height, "window height")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "fullscreen window")
	cmd.Flags().BoolVar(&win.HUD, "hud", false, "show frame statistics (F1 toggles)")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var (
		o    overrides
		opts = viz.DefaultOptions()
	)
	cmd := &cobra.Command{
		Use:   "preview [preset]",
		Short: "preview the lattice in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := o.resolve(cmd, args)
			if err != nil {
				return err
			}
			logger.Debug("preview", "preset", name, "mode", cfg.Mode)
			return viz.Run(engine.New(viz.TerminalConfig(cfg), capabilities()), opts)
		},
	}
	o.register(cmd)
	cmd.Flags().IntVar(&opts.FPS, "fps", opts.FPS, "preview frame rate")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	return cmd
}
