package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/device"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	lowPower   bool
	logLevel   string

	logger *log.Logger
)

// main registers every command and exits 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lattice",
		Short:         "spring-mass dot lattice animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lattice", "trace data directory")
	rootCmd.PersistentFlags().BoolVar(&lowPower, "low-power", false, "force low-power mode")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newPreviewCmd(),
		newRenderCmd(),
		newTraceCmd(),
		newCompareCmd(),
		newRunsCmd(),
		newPlotCmd(),
		newAnalyzeCmd(),
		newBenchCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "lattice",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return nil
}

// loadConfig resolves the preset named by args (if any), then overlays the
// --config file.
func loadConfig(args []string) (*config.Config, string, error) {
	name := "crystal"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := config.GetPreset(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w (available: %v)", err, config.ListPresets())
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("config loaded", "path", configFile)
	}
	return cfg, name, nil
}

func capabilities() device.Capabilities {
	p := device.LocalProbe()
	p.ForceLowPower = lowPower
	caps := device.Detect(p)
	logger.Debug("device", "tier", p.Classify(), "low_power", caps.IsLowPower)
	return caps
}
