package main

import (
	"igdiff/pkg/config"
	"igdiff/pkg/graph"
	"igdiff/pkg/humanize"
)

// graphOptions maps the loaded configuration onto the analyzer options.
// Values the configuration does not expose keep their defaults.
func graphOptions(cfg *config.Config) graph.Options {
	opts := graph.DefaultOptions()
	opts.BaseURL = cfg.Instagram.BaseURL

	s := cfg.Scroll
	opts.Scroller = graph.ScrollerConfig{
		StepPause:       s.StepPause,
		SettlePause:     s.SettlePause,
		QuietPeriod:     s.QuietPeriod,
		MaxSteps:        s.MaxSteps,
		MinSteps:        s.MinSteps,
		PauseEvery:      s.PauseEvery,
		ExtraPause:      s.ExtraPause,
		BottomTolerance: s.BottomTolerance,
		WheelFactorMin:  s.WheelFactorMin,
		WheelFactorMax:  s.WheelFactorMax,
	}

	opts.Collector.ListRenderTimeout = cfg.Timing.ListRenderTimeout
	opts.Collector.OverflowTolerance = s.OverflowTolerance
	opts.Random = humanize.NewRandom(cfg.Timing.Seed)

	return opts
}

// commandLineFlags collects the flags the user actually set, keyed the way
// config.MergeCommandLineFlags expects
func commandLineFlags(set func(name string) bool) map[string]interface{} {
	flags := make(map[string]interface{})
	if set("log-level") {
		flags["log-level"] = logLevel
	}
	if set("headless") {
		flags["headless"] = diffHeadless
	}
	if set("profile-dir") {
		flags["profile-dir"] = diffProfileDir
	}
	if set("bin") {
		flags["bin"] = diffBin
	}
	if set("format") {
		flags["format"] = diffFormat
	}
	if set("output") {
		flags["output"] = diffOutput
	}
	if set("max-steps") {
		flags["max-steps"] = diffMaxSteps
	}
	if set("quiet-period") {
		flags["quiet-period"] = diffQuietPeriod
	}
	if set("seed") {
		flags["seed"] = diffSeed
	}
	return flags
}
