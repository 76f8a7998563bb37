package logger

import (
	"time"
)

// LogComponentStart logs when a component starts
func LogComponentStart(l Logger, component string, config map[string]interface{}) {
	l = l.WithField("component", component)
	if len(config) > 0 {
		l = l.WithFields(config)
	}
	l.Info("Component started")
}

// LogComponentStop logs when a component stops
func LogComponentStop(l Logger, component string, reason string) {
	l.WithFields(map[string]interface{}{
		"component": component,
		"reason":    reason,
	}).Info("Component stopped")
}

// LogScrollProgress logs one scroller sample. Emitted at debug level since
// a single list can take hundreds of steps.
func LogScrollProgress(l Logger, list string, step, unique int, atBottom bool) {
	l.DebugWithFields("Scroll step", map[string]interface{}{
		"list":      list,
		"step":      step,
		"unique":    unique,
		"at_bottom": atBottom,
	})
}

// LogListCollected logs the outcome of collecting one named list
func LogListCollected(l Logger, list string, count, steps int, converged bool, took time.Duration) {
	fields := map[string]interface{}{
		"list":      list,
		"count":     count,
		"steps":     steps,
		"converged": converged,
		"duration":  took,
	}
	if !converged && steps > 0 {
		l.WarnWithFields("List collected without convergence", fields)
		return
	}
	l.InfoWithFields("List collected", fields)
}

// NewNopLogger creates a no-operation logger
func NewNopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (n nopLogger) Debug(msg string)                                          {}
func (n nopLogger) Info(msg string)                                           {}
func (n nopLogger) Warn(msg string)                                           {}
func (n nopLogger) Error(msg string)                                          {}
func (n nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n nopLogger) WithError(err error) Logger                                { return n }
func (n nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
