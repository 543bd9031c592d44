package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codesniff/internal/config"
	"codesniff/internal/driver"
)

const cacheApp = "codesniff"

// loadConfig reads --config or discovers codesniff.toml upwards from the
// first target. No file means the built-in defaults.
func loadConfig(cmd *cobra.Command, targets []string) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	start := "."
	if len(targets) > 0 {
		start = targets[0]
	}
	cfg, err := config.Discover(start)
	if errors.Is(err, config.ErrNoConfig) {
		return config.Default(), nil
	}
	return cfg, err
}

// driverOptions merges config values with flags; flags win when set.
func driverOptions(cmd *cobra.Command, cfg *config.Config, mode driver.Mode) (driver.Options, error) {
	regs, err := cfg.Registrations()
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Mode:          mode,
		Registrations: regs,
		TabWidth:      cfg.Run.TabWidth,
		Encoding:      cfg.Run.Encoding,
		MaxPasses:     cfg.Run.MaxPasses,
		Jobs:          cfg.Run.Jobs,
	}

	root := cmd.Root().PersistentFlags()
	if opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.Timings, err = root.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	tabWidth, err := root.GetInt("tab-width")
	if err != nil {
		return opts, fmt.Errorf("failed to get tab-width flag: %w", err)
	}
	if tabWidth >= 0 {
		opts.TabWidth = tabWidth
	}
	encoding, err := root.GetString("encoding")
	if err != nil {
		return opts, fmt.Errorf("failed to get encoding flag: %w", err)
	}
	if encoding != "" {
		opts.Encoding = encoding
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}

	if mode == driver.ModeFix {
		passes, err := cmd.Flags().GetInt("max-passes")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-passes flag: %w", err)
		}
		if passes > 0 {
			opts.MaxPasses = passes
		}
		if opts.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
			return opts, fmt.Errorf("failed to get dry-run flag: %w", err)
		}
		return opts, nil
	}

	opts.Cache, err = openCache(cmd, cfg)
	return opts, err
}

// openCache: [run].cache задаёт каталог (относительно конфига), --cache
// включает кэш в каталоге пользователя, --no-cache отключает всё.
func openCache(cmd *cobra.Command, cfg *config.Config) (*driver.DiskCache, error) {
	enable, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	disable, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if disable || (!enable && cfg.Run.Cache == "") {
		return nil, nil
	}
	if dir := cfg.Run.Cache; dir != "" {
		if !filepath.IsAbs(dir) && cfg.Root != "" {
			dir = filepath.Join(cfg.Root, dir)
		}
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache(cacheApp)
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}
