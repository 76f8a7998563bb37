package graph

import (
	"context"
	"fmt"
	"sort"

	errs "igdiff/pkg/errors"
	"igdiff/pkg/logger"
)

// ScrollMarker is the attribute stamped on the chosen scroll container
const ScrollMarker = "data-igdiff-scroll"

// ScrollHandle identifies the scroll container found by the Locator. It
// stays valid until the dialog closes or the locator runs again.
type ScrollHandle struct {
	selector string
}

// Selector returns the CSS selector that matches the marked container
func (h *ScrollHandle) Selector() string {
	return h.selector
}

// Candidate describes one element of the dialog that may scroll the list
type Candidate struct {
	Index        int     `json:"index"`
	OverflowY    string  `json:"overflowY"`
	ScrollHeight float64 `json:"scrollHeight"`
	ClientHeight float64 `json:"clientHeight"`
}

// Overflow is how far the content exceeds the visible height
func (c Candidate) Overflow() float64 {
	return c.ScrollHeight - c.ClientHeight
}

type candidateReport struct {
	HasDialog  bool        `json:"hasDialog"`
	Candidates []Candidate `json:"candidates"`
}

// pickScrollContainer returns the candidate with the largest overflow among
// those that scroll and overflow by more than tolerance. Ties go to the
// earliest candidate in document order.
func pickScrollContainer(candidates []Candidate, tolerance float64) (Candidate, bool) {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.OverflowY != "auto" && c.OverflowY != "scroll" {
			continue
		}
		if c.ScrollHeight <= c.ClientHeight+tolerance {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return Candidate{}, false
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Overflow() > eligible[j].Overflow()
	})
	return eligible[0], true
}

// Locator finds the scrollable element of the list inside the open dialog
type Locator struct {
	page      Page
	tolerance float64
	log       logger.Logger
}

// NewLocator creates a Locator. Elements must overflow by more than
// tolerance pixels to count as scrollable.
func NewLocator(page Page, tolerance float64, log logger.Logger) *Locator {
	return &Locator{page: page, tolerance: tolerance, log: log}
}

// Locate marks the list's scroll container and returns a handle to it.
// It fails with ErrorTypeNoDialog when no dialog is open and with
// ErrorTypeNoScrollContainer when nothing in the dialog scrolls.
func (l *Locator) Locate(ctx context.Context) (*ScrollHandle, error) {
	var report candidateReport
	if err := l.page.Evaluate(ctx, scrollCandidatesJS, &report); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeLocator, "dialog", "failed to list scroll candidates", err)
	}
	if !report.HasDialog {
		return nil, errs.New(errs.ErrorTypeNoDialog, "dialog", "no dialog is open")
	}

	winner, ok := pickScrollContainer(report.Candidates, l.tolerance)
	if !ok {
		return nil, errs.New(errs.ErrorTypeNoScrollContainer, "dialog",
			fmt.Sprintf("none of %d candidates scrolls", len(report.Candidates)))
	}

	var marked bool
	if err := l.page.Evaluate(ctx, markContainerJS, &marked, winner.Index, ScrollMarker); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeLocator, "dialog", "failed to mark scroll container", err)
	}
	if !marked {
		return nil, errs.New(errs.ErrorTypeLocator, "dialog", "scroll container detached before marking")
	}

	l.log.DebugWithFields("Scroll container located", map[string]interface{}{
		"index":      winner.Index,
		"overflow":   winner.Overflow(),
		"candidates": len(report.Candidates),
	})

	return &ScrollHandle{selector: fmt.Sprintf(`[%s="1"]`, ScrollMarker)}, nil
}
