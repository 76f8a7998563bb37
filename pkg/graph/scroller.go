package graph

import (
	"context"
	"fmt"
	"time"

	errs "igdiff/pkg/errors"
	"igdiff/pkg/humanize"
	"igdiff/pkg/logger"
)

// ScrollerConfig tunes the convergence-driven scroll loop
type ScrollerConfig struct {
	// StepPause follows every wheel event, before sampling
	StepPause time.Duration
	// SettlePause follows a sample that reports the bottom, before resampling
	SettlePause time.Duration
	// QuietPeriod is how long the unique count must stay unchanged at the
	// bottom before the list is considered complete
	QuietPeriod time.Duration
	// MaxSteps caps the number of wheel events
	MaxSteps int
	// MinSteps is the step index that must be exceeded before convergence
	MinSteps int
	// PauseEvery inserts ExtraPause after every PauseEvery-th step; 0 disables
	PauseEvery int
	ExtraPause time.Duration
	// BottomTolerance is the pixel slack of the at-bottom test
	BottomTolerance float64
	// Wheel delta is the container height times a factor in
	// [WheelFactorMin, WheelFactorMax)
	WheelFactorMin float64
	WheelFactorMax float64
}

// DefaultScrollerConfig returns the tuning used against the live site
func DefaultScrollerConfig() ScrollerConfig {
	return ScrollerConfig{
		StepPause:       160 * time.Millisecond,
		SettlePause:     450 * time.Millisecond,
		QuietPeriod:     1600 * time.Millisecond,
		MaxSteps:        360,
		MinSteps:        25,
		PauseEvery:      22,
		ExtraPause:      240 * time.Millisecond,
		BottomTolerance: 4,
		WheelFactorMin:  1.0,
		WheelFactorMax:  1.8,
	}
}

// Snapshot is one sample of the list and its scroll container
type Snapshot struct {
	UniqueCount  int
	AtBottom     bool
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// ScrollStats summarizes one scroll session
type ScrollStats struct {
	Steps       int
	UniqueCount int
	// Converged is false when the session stopped at MaxSteps
	Converged bool
	Duration  time.Duration
}

type scrollSample struct {
	Hrefs        []string `json:"hrefs"`
	Found        bool     `json:"found"`
	ScrollTop    float64  `json:"scrollTop"`
	ScrollHeight float64  `json:"scrollHeight"`
	ClientHeight float64  `json:"clientHeight"`
}

// Scroller wheel-scrolls a list container until no new identifiers show up
type Scroller struct {
	page      Page
	humanizer *humanize.Humanizer
	clock     humanize.Clock
	cfg       ScrollerConfig
	log       logger.Logger
}

// NewScroller creates a Scroller
func NewScroller(page Page, h *humanize.Humanizer, clock humanize.Clock, cfg ScrollerConfig, log logger.Logger) *Scroller {
	return &Scroller{
		page:      page,
		humanizer: h,
		clock:     clock,
		cfg:       cfg,
		log:       log,
	}
}

// Sample reads the current snapshot of the container behind handle. A
// container that is gone reports zero metrics and never AtBottom.
func (s *Scroller) Sample(ctx context.Context, handle *ScrollHandle) (Snapshot, error) {
	var raw scrollSample
	if err := s.page.Evaluate(ctx, scrollSampleJS, &raw, handle.Selector()); err != nil {
		return Snapshot{}, errs.Wrap(errs.ErrorTypeBrowser, handle.Selector(), "failed to sample scroll state", err)
	}

	snap := Snapshot{
		UniqueCount:  len(ExtractIdentifiers(raw.Hrefs)),
		ScrollTop:    raw.ScrollTop,
		ScrollHeight: raw.ScrollHeight,
		ClientHeight: raw.ClientHeight,
	}
	snap.AtBottom = raw.Found && snap.ScrollTop+snap.ClientHeight >= snap.ScrollHeight-s.cfg.BottomTolerance
	return snap, nil
}

// Scroll drives the container to the end of the list. It stops once the
// container sits at the bottom and the unique count has not changed for
// QuietPeriod, or after MaxSteps wheel events. Hitting the cap is not an
// error; it shows up as Converged == false.
func (s *Scroller) Scroll(ctx context.Context, handle *ScrollHandle, list ListKind) (ScrollStats, error) {
	start := s.clock.Now()

	box, err := s.humanizer.Hover(ctx, handle.Selector())
	if err != nil {
		return ScrollStats{}, errs.Wrap(errs.ErrorTypeLocator, handle.Selector(), "scroll container is not reachable", err)
	}

	lastCount := -1
	lastChange := s.clock.Now()
	observe := func(snap Snapshot) {
		if snap.UniqueCount != lastCount {
			lastCount = snap.UniqueCount
			lastChange = s.clock.Now()
		}
	}

	for i := 0; i < s.cfg.MaxSteps; i++ {
		if err := s.humanizer.Wheel(ctx, box.Height, s.cfg.WheelFactorMin, s.cfg.WheelFactorMax); err != nil {
			return ScrollStats{}, errs.Wrap(errs.ErrorTypeBrowser, handle.Selector(), "wheel event failed", err)
		}
		if err := s.clock.Sleep(ctx, s.cfg.StepPause); err != nil {
			return ScrollStats{}, err
		}

		snap, err := s.Sample(ctx, handle)
		if err != nil {
			return ScrollStats{}, err
		}
		observe(snap)
		logger.LogScrollProgress(s.log, string(list), i, snap.UniqueCount, snap.AtBottom)

		if snap.AtBottom {
			if err := s.clock.Sleep(ctx, s.cfg.SettlePause); err != nil {
				return ScrollStats{}, err
			}
			snap, err = s.Sample(ctx, handle)
			if err != nil {
				return ScrollStats{}, err
			}
			observe(snap)

			if s.clock.Now().Sub(lastChange) >= s.cfg.QuietPeriod && i > s.cfg.MinSteps {
				return ScrollStats{
					Steps:       i + 1,
					UniqueCount: lastCount,
					Converged:   true,
					Duration:    s.clock.Now().Sub(start),
				}, nil
			}
		}

		if s.cfg.PauseEvery > 0 && i > 0 && i%s.cfg.PauseEvery == 0 {
			if err := s.clock.Sleep(ctx, s.cfg.ExtraPause); err != nil {
				return ScrollStats{}, err
			}
		}
	}

	if lastCount < 0 {
		lastCount = 0
	}
	s.log.WarnWithFields(fmt.Sprintf("Scroll stopped at the %d step cap", s.cfg.MaxSteps), map[string]interface{}{
		"list":   string(list),
		"unique": lastCount,
	})

	return ScrollStats{
		Steps:       s.cfg.MaxSteps,
		UniqueCount: lastCount,
		Duration:    s.clock.Now().Sub(start),
	}, nil
}
