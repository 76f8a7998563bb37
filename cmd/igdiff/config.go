package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"igdiff/pkg/config"
	"igdiff/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage igdiff configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (IGDIFF_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with the default values",
	Long: `Create a configuration file holding every option at its default value.

The file is written to '.igdiff.yaml' in the current directory unless a
different path is given with --config. An existing file is not overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration from all sources and check its values:
  - YAML syntax
  - Scroll step bounds and quiet period
  - Timeouts and wheel factor range
  - Output format and log level`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd, showCmd, validateCmd)
}

func printerFor(cmd *cobra.Command) *ui.Printer {
	if noColor {
		return ui.NewPlainPrinter(cmd.OutOrStdout())
	}
	return ui.NewPrinter(cmd.OutOrStdout())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

	path := configFile
	if path == "" {
		path = ".igdiff.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		err := fmt.Errorf("%s already exists", path)
		printer.Error("Refusing to overwrite configuration", err)
		return err
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		printer.Error("Failed to create configuration file", err)
		return err
	}

	printer.Success("Configuration file created: " + path)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Set instagram.username or pass the username on the command line")
	fmt.Fprintln(out, "2. Run 'igdiff config validate' to check the configuration")
	fmt.Fprintln(out, "3. Run 'igdiff <username>' and log in once in the opened browser")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		printer.Error("Failed to load configuration", err)
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		printer.Error("Failed to format configuration", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	fmt.Fprintln(out, "2. Environment variables (IGDIFF_*)")
	fmt.Fprintln(out, "3. .env and ~/.igdiff.env")
	if configFile != "" {
		fmt.Fprintf(out, "4. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(out, "4. Configuration file: (searched in default locations)")
	}
	fmt.Fprintln(out, "5. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		printer.Error("Configuration validation failed", err)
		return err
	}

	var warnings []string
	if cfg.Instagram.Username == "" {
		warnings = append(warnings, "instagram.username is not set; pass the username on the command line")
	}
	if cfg.Browser.Headless {
		warnings = append(warnings, "headless mode cannot show the login page; log in with a headed run first")
	}
	if cfg.Timing.Seed != 0 {
		warnings = append(warnings, "a fixed seed makes every run move the pointer the same way")
	}

	for _, w := range warnings {
		printer.Warning("  - " + w)
	}

	printer.Success("Configuration is valid")
	printer.Info("Profile directory", cfg.Browser.UserDataDir)
	printer.Info("Max scroll steps", fmt.Sprint(cfg.Scroll.MaxSteps))
	printer.Info("Quiet period", cfg.Scroll.QuietPeriod.String())
	printer.Info("Output format", cfg.Output.Format)
	printer.Info("Log level", cfg.Logging.Level)
	return nil
}
