package humanize

import (
	"context"
	"fmt"
	"time"
)

// Box is an element's bounding box in viewport CSS pixels
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the box
func (b Box) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Pointer is the subset of page operations needed to drive the mouse
type Pointer interface {
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	BoundingBox(ctx context.Context, selector string) (*Box, error)
	MoveMouse(ctx context.Context, x, y float64, steps int) error
	Click(ctx context.Context, x, y float64) error
	Wheel(ctx context.Context, deltaY float64) error
}

// Profile holds the timing and geometry ranges of simulated input
type Profile struct {
	VisibleTimeout time.Duration

	PreClick    Range // pause once the target is visible
	MoveSteps   Range // intermediate pointer positions on the way to a target
	BeforeClick Range
	AfterClick  Range

	// Click lands at this fraction of the box on each axis
	ClickAreaMin float64
	ClickAreaMax float64

	HoverSteps Range
	AfterHover Range
}

// DefaultProfile returns the ranges used against the live site
func DefaultProfile() Profile {
	return Profile{
		VisibleTimeout: 30 * time.Second,
		PreClick:       Range{Min: 250, Max: 700},
		MoveSteps:      Range{Min: 12, Max: 28},
		BeforeClick:    Range{Min: 80, Max: 220},
		AfterClick:     Range{Min: 200, Max: 500},
		ClickAreaMin:   0.3,
		ClickAreaMax:   0.7,
		HoverSteps:     Range{Min: 10, Max: 18},
		AfterHover:     Range{Min: 120, Max: 260},
	}
}

// Humanizer performs pointer actions with randomized timing and path
// granularity
type Humanizer struct {
	pointer Pointer
	clock   Clock
	rnd     *Random
	profile Profile
}

// New creates a Humanizer
func New(pointer Pointer, clock Clock, rnd *Random, profile Profile) *Humanizer {
	if clock == nil {
		clock = RealClock{}
	}
	if rnd == nil {
		rnd = NewRandom(0)
	}
	return &Humanizer{
		pointer: pointer,
		clock:   clock,
		rnd:     rnd,
		profile: profile,
	}
}

// Pause sleeps for a duration drawn from rg
func (h *Humanizer) Pause(ctx context.Context, rg Range) error {
	return h.clock.Sleep(ctx, h.rnd.Millis(rg))
}

// Click waits for selector to be visible, moves the pointer to a random
// point in the middle band of its box and clicks there.
func (h *Humanizer) Click(ctx context.Context, selector string) error {
	if err := h.pointer.WaitVisible(ctx, selector, h.profile.VisibleTimeout); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	if err := h.Pause(ctx, h.profile.PreClick); err != nil {
		return err
	}

	box, err := h.pointer.BoundingBox(ctx, selector)
	if err != nil {
		return fmt.Errorf("bounding box of %s: %w", selector, err)
	}

	x := box.X + box.Width*h.rnd.Uniform(h.profile.ClickAreaMin, h.profile.ClickAreaMax)
	y := box.Y + box.Height*h.rnd.Uniform(h.profile.ClickAreaMin, h.profile.ClickAreaMax)

	if err := h.pointer.MoveMouse(ctx, x, y, h.rnd.Pick(h.profile.MoveSteps)); err != nil {
		return fmt.Errorf("move to %s: %w", selector, err)
	}
	if err := h.Pause(ctx, h.profile.BeforeClick); err != nil {
		return err
	}
	if err := h.pointer.Click(ctx, x, y); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return h.Pause(ctx, h.profile.AfterClick)
}

// Hover waits for selector to be visible, parks the pointer on its center
// and returns the box it measured.
func (h *Humanizer) Hover(ctx context.Context, selector string) (*Box, error) {
	if err := h.pointer.WaitVisible(ctx, selector, h.profile.VisibleTimeout); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}

	box, err := h.pointer.BoundingBox(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("bounding box of %s: %w", selector, err)
	}

	x, y := box.Center()
	if err := h.pointer.MoveMouse(ctx, x, y, h.rnd.Pick(h.profile.HoverSteps)); err != nil {
		return nil, fmt.Errorf("move to %s: %w", selector, err)
	}
	if err := h.Pause(ctx, h.profile.AfterHover); err != nil {
		return nil, err
	}
	return box, nil
}

// Wheel scrolls by a wheel delta of height times a factor drawn from
// [minFactor, maxFactor), floored to whole pixels.
func (h *Humanizer) Wheel(ctx context.Context, height, minFactor, maxFactor float64) error {
	delta := float64(int(height * h.rnd.Uniform(minFactor, maxFactor)))
	return h.pointer.Wheel(ctx, delta)
}
