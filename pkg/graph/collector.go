package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	errs "igdiff/pkg/errors"
	"igdiff/pkg/humanize"
	"igdiff/pkg/logger"
)

// ListKind names one of the two relationship lists of a profile
type ListKind string

const (
	Followers ListKind = "followers"
	Following ListKind = "following"
)

// CollectorConfig holds the waits around one list collection
type CollectorConfig struct {
	// ListRenderTimeout bounds the wait for the first profile link to render
	ListRenderTimeout time.Duration
	// OverflowTolerance is passed to the Locator
	OverflowTolerance float64
	// CloseSettle is the pause after dismissing the dialog
	CloseSettle humanize.Range
}

// DefaultCollectorConfig returns the waits used against the live site
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		ListRenderTimeout: 20 * time.Second,
		OverflowTolerance: 5,
		CloseSettle:       humanize.Range{Min: 250, Max: 500},
	}
}

// ListResult is the outcome of collecting one list
type ListResult struct {
	Kind        ListKind
	Identifiers []string
	Stats       ScrollStats
	// Scrolled is false when no scroll container was found
	Scrolled bool
}

// Collector opens a list dialog, scrolls it to the end, extracts the
// identifiers and closes the dialog again
type Collector struct {
	page      Page
	humanizer *humanize.Humanizer
	clock     humanize.Clock
	locator   *Locator
	scroller  *Scroller
	extractor *Extractor
	cfg       CollectorConfig
	log       logger.Logger
}

// NewCollector creates a Collector
func NewCollector(page Page, h *humanize.Humanizer, clock humanize.Clock, scroller *Scroller, cfg CollectorConfig, log logger.Logger) *Collector {
	return &Collector{
		page:      page,
		humanizer: h,
		clock:     clock,
		locator:   NewLocator(page, cfg.OverflowTolerance, log),
		scroller:  scroller,
		extractor: NewExtractor(page),
		cfg:       cfg,
		log:       log,
	}
}

// TriggerSelector returns the selector of the link that opens kind's dialog
// on username's profile
func TriggerSelector(username string, kind ListKind) string {
	href := fmt.Sprintf("/%s/%s/", username, kind)
	return fmt.Sprintf(`a[href=%s][role="link"]`, cssString(href))
}

// cssString quotes s as a CSS string literal
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == 0:
			b.WriteString(`\fffd `)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Collect gathers the identifiers of one list. A missing dialog yields an
// empty list; a dialog without a scroll container is read as rendered.
func (c *Collector) Collect(ctx context.Context, username string, kind ListKind) (*ListResult, error) {
	log := c.log.WithField("list", string(kind))
	started := c.clock.Now()

	trigger := TriggerSelector(username, kind)
	if err := c.humanizer.Click(ctx, trigger); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeLocator, trigger, "failed to open list", err)
	}

	if err := c.waitListView(ctx, kind); err != nil {
		return nil, err
	}

	result := &ListResult{Kind: kind, Identifiers: []string{}}

	handle, err := c.locator.Locate(ctx)
	if err != nil && errs.IsFatal(errs.TypeOf(err)) {
		return nil, err
	}

	switch {
	case errs.IsType(err, errs.ErrorTypeNoDialog):
		log.WithError(err).Warn("List opened without a dialog, treating it as empty")
		if err := c.close(ctx); err != nil {
			return nil, err
		}
		logger.LogListCollected(log, string(kind), 0, 0, false, c.clock.Now().Sub(started))
		return result, nil
	case errs.IsType(err, errs.ErrorTypeNoScrollContainer):
		log.WithError(err).Warn("No scroll container, reading the list as rendered")
	default:
		stats, err := c.scroller.Scroll(ctx, handle, kind)
		if err != nil {
			return nil, err
		}
		result.Stats = stats
		result.Scrolled = true
	}

	if err := c.waitListView(ctx, kind); err != nil {
		return nil, err
	}

	ids, err := c.extractor.Extract(ctx)
	if err != nil {
		return nil, err
	}
	result.Identifiers = ids

	if err := c.close(ctx); err != nil {
		return nil, err
	}

	logger.LogListCollected(log, string(kind), len(ids), result.Stats.Steps, result.Stats.Converged || !result.Scrolled, c.clock.Now().Sub(started))
	return result, nil
}

// waitListView blocks until a profile link is rendered
func (c *Collector) waitListView(ctx context.Context, kind ListKind) error {
	err := c.page.WaitFor(ctx, listViewReadyJS, c.cfg.ListRenderTimeout)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrWaitTimeout):
		return errs.Wrap(errs.ErrorTypeListRender, string(kind),
			fmt.Sprintf("no profile link rendered within %s", c.cfg.ListRenderTimeout), err)
	default:
		return errs.Wrap(errs.ErrorTypeBrowser, string(kind), "list view wait failed", err)
	}
}

func (c *Collector) close(ctx context.Context) error {
	if err := c.page.Press(ctx, KeyEscape); err != nil {
		return errs.Wrap(errs.ErrorTypeBrowser, "dialog", "failed to close dialog", err)
	}
	return c.humanizer.Pause(ctx, c.cfg.CloseSettle)
}
