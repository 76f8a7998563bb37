package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"igdiff/internal/browser"
	"igdiff/pkg/config"
	errs "igdiff/pkg/errors"
	"igdiff/pkg/graph"
	"igdiff/pkg/logger"
	"igdiff/pkg/report"
	"igdiff/pkg/ui"
)

var (
	// Diff command flags
	diffHeadless    bool
	diffProfileDir  string
	diffBin         string
	diffFormat      string
	diffOutput      string
	diffMaxSteps    int
	diffQuietPeriod time.Duration
	diffSeed        int64
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff [username]",
	Short: "List the accounts a profile follows that do not follow it back",
	Long: `Open the profile in the browser, collect its followers and following
lists, and print the accounts in following that are missing from followers.

The result is written to stdout (or --output) as JSON or YAML. Progress and
the summary go to stderr.`,
	Example: `  # Analyze a profile, result on stdout
  igdiff diff johndoe

  # The diff subcommand is the default
  igdiff johndoe

  # Headless with a separate browser profile, YAML into a file
  igdiff diff johndoe --headless --profile-dir ./alt-profile --format yaml -o result.yaml

  # Reproducible jitter and a longer quiet period for slow connections
  igdiff diff johndoe --seed 42 --quiet-period 3s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffHeadless, "headless", false, "run the browser without a window")
	diffCmd.Flags().StringVar(&diffProfileDir, "profile-dir", "", "browser profile directory (default ./profile)")
	diffCmd.Flags().StringVar(&diffBin, "bin", "", "path to a Chrome or Chromium binary")
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "", "output format: json or yaml (default json)")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "", "write the result to this file instead of stdout")
	diffCmd.Flags().IntVar(&diffMaxSteps, "max-steps", 0, "maximum scroll steps per list (default 360)")
	diffCmd.Flags().DurationVar(&diffQuietPeriod, "quiet-period", 0, "how long a list must stop growing at the bottom (default 1.6s)")
	diffCmd.Flags().Int64Var(&diffSeed, "seed", 0, "seed for the input jitter (0 seeds from the clock)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	printer := ui.NewPrinter(stderr)
	if noColor {
		printer = ui.NewPlainPrinter(stderr)
	}

	flags := commandLineFlags(func(name string) bool {
		return cmd.Flags().Changed(name)
	})
	if len(args) == 1 {
		flags["username"] = strings.Trim(strings.TrimSpace(args[0]), "@")
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		printer.Error("Failed to load configuration", err)
		return err
	}

	username := cfg.Instagram.Username
	if username == "" {
		printer.Error("Usage: igdiff diff <username>", nil)
		return fmt.Errorf("no username given and instagram.username is not set")
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		printer.Error("Invalid output format", err)
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		printer.Error("Failed to initialize logger", err)
		return err
	}
	log := logger.WithField("username", username)

	printer.Logo()
	printer.Info("Target Profile", username)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Launch(ctx, cfg.Browser, log)
	if err != nil {
		log.WithError(err).Error("Browser launch failed")
		printer.Error("Failed to launch browser", err)
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WithError(err).Warn("Browser close failed")
		}
	}()

	started := time.Now()
	analyzer := graph.NewAnalyzer(session.Page(), graphOptions(cfg), log)
	result, err := analyzer.Run(ctx, username)
	if err != nil {
		log.WithError(err).WithField("error_type", string(errs.TypeOf(err))).Error("Analysis failed")
		printer.Error("Analysis failed", err)
		return err
	}

	log.InfoWithFields("Analysis completed", map[string]interface{}{
		"followers":         result.Counts.Followers,
		"following":         result.Counts.Following,
		"not_following_you": len(result.NotFollowingYou),
		"duration_ms":       time.Since(started).Milliseconds(),
	})

	if cfg.Output.File != "" {
		if err := report.WriteFile(cfg.Output.File, result, format); err != nil {
			printer.Error("Failed to write result", err)
			return err
		}
		printer.Info("Result written to", cfg.Output.File)
	} else if err := report.Encode(cmd.OutOrStdout(), result, format); err != nil {
		return err
	}

	printer.Summary(username, result)
	return nil
}
