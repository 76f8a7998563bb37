// Package logger provides the structured logging interface used across igdiff.
//
// It wraps zerolog with a small Logger interface supporting fields, error
// attachment, a colored console writer on stderr and optional file output.
//
// Basic Usage:
//
//	err := logger.Initialize(&config.LoggingConfig{Level: "debug"})
//	logger.WithField("list", "followers").Info("Collecting")
//
// Components take a Logger explicitly; tests pass NewNopLogger() or a
// TestLogger to assert on what was logged:
//
//	tl := logger.NewTestLogger()
//	collector := graph.NewCollector(page, humanizer, clock, scroller, cfg, tl)
//	...
//	assert.True(t, tl.HasMessage("List collected"))
package logger
