package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for igdiff
type Config struct {
	// Target profile
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Browser launch settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Convergence-driven scroller tuning
	Scroll ScrollConfig `yaml:"scroll" json:"scroll"`

	// Waits and jitter
	Timing TimingConfig `yaml:"timing" json:"timing"`

	// Result output
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds the site and the profile to analyze
type InstagramConfig struct {
	BaseURL  string `yaml:"base_url" json:"base_url"`
	Username string `yaml:"username" json:"username"`
}

// BrowserConfig holds browser launch configuration
type BrowserConfig struct {
	Headless          bool          `yaml:"headless" json:"headless"`
	BinPath           string        `yaml:"bin_path" json:"bin_path"`
	UserDataDir       string        `yaml:"user_data_dir" json:"user_data_dir"`
	StartMaximized    bool          `yaml:"start_maximized" json:"start_maximized"`
	LaunchAttempts    int           `yaml:"launch_attempts" json:"launch_attempts"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
}

// ScrollConfig holds the scroller constants. They were tuned against one
// UI and are not expected to generalize without adjustment.
type ScrollConfig struct {
	StepPause         time.Duration `yaml:"step_pause" json:"step_pause"`
	SettlePause       time.Duration `yaml:"settle_pause" json:"settle_pause"`
	QuietPeriod       time.Duration `yaml:"quiet_period" json:"quiet_period"`
	MaxSteps          int           `yaml:"max_steps" json:"max_steps"`
	MinSteps          int           `yaml:"min_steps" json:"min_steps"`
	PauseEvery        int           `yaml:"pause_every" json:"pause_every"`
	ExtraPause        time.Duration `yaml:"extra_pause" json:"extra_pause"`
	BottomTolerance   float64       `yaml:"bottom_tolerance" json:"bottom_tolerance"`
	OverflowTolerance float64       `yaml:"overflow_tolerance" json:"overflow_tolerance"`
	WheelFactorMin    float64       `yaml:"wheel_factor_min" json:"wheel_factor_min"`
	WheelFactorMax    float64       `yaml:"wheel_factor_max" json:"wheel_factor_max"`
}

// TimingConfig holds wait timeouts and the jitter seed
type TimingConfig struct {
	ListRenderTimeout time.Duration `yaml:"list_render_timeout" json:"list_render_timeout"`
	// Seed for the jitter source; 0 seeds from the clock
	Seed int64 `yaml:"seed" json:"seed"`
}

// OutputConfig holds result output configuration
type OutputConfig struct {
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			BaseURL: "https://www.instagram.com",
		},
		Browser: BrowserConfig{
			Headless:          false,
			UserDataDir:       "./profile",
			StartMaximized:    true,
			LaunchAttempts:    3,
			NavigationTimeout: 60 * time.Second,
		},
		Scroll: ScrollConfig{
			StepPause:         160 * time.Millisecond,
			SettlePause:       450 * time.Millisecond,
			QuietPeriod:       1600 * time.Millisecond,
			MaxSteps:          360,
			MinSteps:          25,
			PauseEvery:        22,
			ExtraPause:        240 * time.Millisecond,
			BottomTolerance:   4,
			OverflowTolerance: 5,
			WheelFactorMin:    1.0,
			WheelFactorMax:    1.8,
		},
		Timing: TimingConfig{
			ListRenderTimeout: 20 * time.Second,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv("IGDIFF_BASE_URL"); v != "" {
		c.Instagram.BaseURL = v
	}
	if v := os.Getenv("IGDIFF_USERNAME"); v != "" {
		c.Instagram.Username = v
	}

	if v := os.Getenv("IGDIFF_HEADLESS"); v != "" {
		c.Browser.Headless = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("IGDIFF_BROWSER_BIN"); v != "" {
		c.Browser.BinPath = v
	}
	if v := os.Getenv("IGDIFF_PROFILE_DIR"); v != "" {
		c.Browser.UserDataDir = v
	}

	if v := os.Getenv("IGDIFF_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGDIFF_MAX_STEPS: %w", err))
		} else {
			c.Scroll.MaxSteps = n
		}
	}
	if v := os.Getenv("IGDIFF_QUIET_PERIOD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGDIFF_QUIET_PERIOD: %w", err))
		} else {
			c.Scroll.QuietPeriod = d
		}
	}
	if v := os.Getenv("IGDIFF_LIST_RENDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGDIFF_LIST_RENDER_TIMEOUT: %w", err))
		} else {
			c.Timing.ListRenderTimeout = d
		}
	}
	if v := os.Getenv("IGDIFF_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGDIFF_SEED: %w", err))
		} else {
			c.Timing.Seed = n
		}
	}

	if v := os.Getenv("IGDIFF_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("IGDIFF_OUTPUT_FILE"); v != "" {
		c.Output.File = v
	}
	if v := os.Getenv("IGDIFF_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".igdiff.yaml",
		".igdiff.yml",
		filepath.Join(home, ".config", "igdiff", "config.yaml"),
		filepath.Join(home, ".config", "igdiff", "config.yml"),
		filepath.Join(home, ".igdiff.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Instagram.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}
	if strings.Contains(c.Instagram.Username, "/") {
		errs = append(errs, errors.New("username must not contain slashes"))
	}

	if c.Browser.LaunchAttempts <= 0 {
		errs = append(errs, errors.New("launch attempts must be positive"))
	}
	if c.Browser.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}

	s := c.Scroll
	if s.MaxSteps <= 0 {
		errs = append(errs, errors.New("max steps must be positive"))
	}
	if s.MinSteps < 0 {
		errs = append(errs, errors.New("min steps cannot be negative"))
	}
	if s.MinSteps >= s.MaxSteps {
		errs = append(errs, errors.New("min steps must be below max steps"))
	}
	if s.PauseEvery < 0 {
		errs = append(errs, errors.New("pause interval cannot be negative"))
	}
	if s.StepPause < 0 || s.SettlePause < 0 || s.ExtraPause < 0 {
		errs = append(errs, errors.New("scroll pauses cannot be negative"))
	}
	if s.QuietPeriod <= 0 {
		errs = append(errs, errors.New("quiet period must be positive"))
	}
	if s.WheelFactorMin <= 0 || s.WheelFactorMax < s.WheelFactorMin {
		errs = append(errs, errors.New("wheel factor range is invalid"))
	}
	if s.BottomTolerance < 0 || s.OverflowTolerance < 0 {
		errs = append(errs, errors.New("pixel tolerances cannot be negative"))
	}

	if c.Timing.ListRenderTimeout <= 0 {
		errs = append(errs, errors.New("list render timeout must be positive"))
	}

	validFormats := map[string]bool{"json": true, "yaml": true}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, errors.New("invalid output format"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if username, ok := flags["username"].(string); ok && username != "" {
		c.Instagram.Username = username
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Browser.Headless = headless
	}
	if bin, ok := flags["bin"].(string); ok && bin != "" {
		c.Browser.BinPath = bin
	}
	if dir, ok := flags["profile-dir"].(string); ok && dir != "" {
		c.Browser.UserDataDir = dir
	}
	if steps, ok := flags["max-steps"].(int); ok && steps > 0 {
		c.Scroll.MaxSteps = steps
	}
	if quiet, ok := flags["quiet-period"].(time.Duration); ok && quiet > 0 {
		c.Scroll.QuietPeriod = quiet
	}
	if seed, ok := flags["seed"].(int64); ok && seed != 0 {
		c.Timing.Seed = seed
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Output.Format = format
	}
	if file, ok := flags["output"].(string); ok && file != "" {
		c.Output.File = file
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igdiff.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
