package graph

import (
	"context"
	"errors"
	"time"

	"igdiff/pkg/humanize"
)

// Box is an element's bounding box in viewport CSS pixels
type Box = humanize.Box

// KeyEscape is the key name passed to Page.Press to dismiss a dialog
const KeyEscape = "Escape"

// ErrWaitTimeout is returned (wrapped) by Page.WaitFor and Page.WaitVisible
// when the predicate does not hold before the timeout.
var ErrWaitTimeout = errors.New("wait timed out")

// Page is the browser page the analyzer drives. Every call blocks until the
// browser has answered or ctx is done.
type Page interface {
	humanize.Pointer

	// Navigate loads url and waits for network activity to settle
	Navigate(ctx context.Context, url string) error

	// WaitFor polls the JS predicate js until it returns a truthy value or
	// timeout elapses
	WaitFor(ctx context.Context, js string, timeout time.Duration, args ...interface{}) error

	// Evaluate runs the JS function js with args and decodes its JSON
	// result into out. A nil out discards the result.
	Evaluate(ctx context.Context, js string, out interface{}, args ...interface{}) error

	Press(ctx context.Context, key string) error
}
