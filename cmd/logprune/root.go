package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"session_logger/internal/config"
	"session_logger/internal/logger"
	"session_logger/internal/retention"
)

type pruneOptions struct {
	configFile string
	dir        string
	max        int
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opts pruneOptions

	cmd := &cobra.Command{
		Use:   "logprune",
		Short: "Remove old session logs",
		Long: `Remove latest.log and the oldest timestamped session logs from a log
directory until fewer than --max remain.

Files whose names are not session timestamps are never touched.

Examples:
  logprune                    # Use LOG_DIR / config.json settings
  logprune --dir ./log --max 5
  logprune --debug            # Include ./log/debug`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Dir = opts.dir
			}
			if cmd.Flags().Changed("max") {
				cfg.MaxSavedLogs = opts.max
			}
			return runPrune(cmd.OutOrStdout(), cfg, opts.debug)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file (default CONFIG_FILE or config.json)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Log directory")
	cmd.Flags().IntVar(&opts.max, "max", 0, "Retention threshold (0 or less disables pruning)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Also prune the debug subdirectory")

	return cmd
}

func runPrune(out io.Writer, cfg config.Config, debug bool) error {
	dirs := []string{cfg.Dir}
	if debug {
		dirs = append(dirs, filepath.Join(cfg.Dir, logger.DebugDirName))
	}

	total := 0
	for _, dir := range dirs {
		n, err := retention.PrepareLogDirectory(dir, cfg.MaxSavedLogs)
		if err != nil {
			return fmt.Errorf("prune %s: %w", dir, err)
		}
		fmt.Fprintf(out, "%s: deleted %d logs\n", dir, n)
		total += n
	}
	if debug {
		fmt.Fprintf(out, "total: deleted %d logs\n", total)
	}
	return nil
}
