package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"igdiff/pkg/graph"
)

// Page adapts a rod page to graph.Page
type Page struct {
	page *rod.Page
	// navigationTimeout bounds Navigate including the request-idle wait
	navigationTimeout time.Duration
	// idleWindow is how long the network must stay quiet after load
	idleWindow time.Duration
}

var _ graph.Page = (*Page)(nil)

// NewPage wraps an existing rod page
func NewPage(p *rod.Page, navigationTimeout time.Duration) *Page {
	return &Page{
		page:              p,
		navigationTimeout: navigationTimeout,
		idleWindow:        500 * time.Millisecond,
	}
}

// Rod returns the underlying rod page
func (p *Page) Rod() *rod.Page {
	return p.page
}

// timeoutErr maps a deadline hit inside rod to graph.ErrWaitTimeout while
// leaving a cancelled parent context untouched
func timeoutErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", graph.ErrWaitTimeout, err)
	}
	return err
}

// Navigate loads url and waits until there have been no in-flight requests
// for the idle window
func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx).Timeout(p.navigationTimeout)
	defer page.CancelTimeout()

	waitIdle := page.WaitRequestIdle(p.idleWindow, nil, nil, nil)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	waitIdle()

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load of %s: %w", url, timeoutErr(ctx, err))
	}
	return nil
}

// WaitFor polls js until it returns a truthy value
func (p *Page) WaitFor(ctx context.Context, js string, timeout time.Duration, args ...interface{}) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	return timeoutErr(ctx, page.Wait(rod.Eval(js, args...)))
}

// Evaluate runs js and decodes its result into out
func (p *Page) Evaluate(ctx context.Context, js string, out interface{}, args ...interface{}) error {
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if out == nil {
		return nil
	}
	if err := res.Value.Unmarshal(out); err != nil {
		return fmt.Errorf("decode evaluation result: %w", err)
	}
	return nil
}

// WaitVisible waits until selector matches a visible element
func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	el, err := page.Element(selector)
	if err != nil {
		return timeoutErr(ctx, err)
	}
	return timeoutErr(ctx, el.WaitVisible())
}

// BoundingBox returns the box of the first element matching selector
func (p *Page) BoundingBox(ctx context.Context, selector string) (*graph.Box, error) {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("no element matches %s", selector)
	}

	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("shape of %s: %w", selector, err)
	}
	rect := shape.Box()
	if rect == nil {
		return nil, fmt.Errorf("%s has no layout box", selector)
	}

	return &graph.Box{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, nil
}

// MoveMouse moves the pointer to (x, y) through steps intermediate positions
func (p *Page) MoveMouse(ctx context.Context, x, y float64, steps int) error {
	if steps < 1 {
		steps = 1
	}
	return p.page.Context(ctx).Mouse.MoveLinear(proto.Point{X: x, Y: y}, steps)
}

// Click presses and releases the left button at (x, y)
func (p *Page) Click(ctx context.Context, x, y float64) error {
	mouse := p.page.Context(ctx).Mouse
	if err := mouse.MoveTo(proto.Point{X: x, Y: y}); err != nil {
		return err
	}
	return mouse.Click(proto.InputMouseButtonLeft, 1)
}

// Wheel dispatches a vertical wheel event at the pointer position
func (p *Page) Wheel(ctx context.Context, deltaY float64) error {
	return p.page.Context(ctx).Mouse.Scroll(0, deltaY, 1)
}

// Press sends a single key press. Only graph.KeyEscape is mapped.
func (p *Page) Press(ctx context.Context, key string) error {
	var k input.Key
	switch key {
	case graph.KeyEscape:
		k = input.Escape
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
	return p.page.Context(ctx).Keyboard.Press(k)
}
