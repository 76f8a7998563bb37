package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"igdiff/pkg/humanize"
)

const fakeMainIndex = 2

// fakeList is a lazily loaded list: the dialog renders batch entries at a
// time and appends the next batch whenever the container reaches its end.
// Rendered entries are never removed.
type fakeList struct {
	ids     []string
	endless bool
	loaded  int
}

func (l *fakeList) total() int {
	if l.endless {
		return 1 << 30
	}
	return len(l.ids)
}

func (l *fakeList) id(i int) string {
	if l.endless {
		return fmt.Sprintf("user%05d", i)
	}
	return l.ids[i]
}

// fakePage simulates a profile page whose followers/following links open a
// dialog holding a fakeList
type fakePage struct {
	clock *humanize.ManualClock
	user  string
	lists map[ListKind]*fakeList

	itemHeight   float64
	clientHeight float64
	batch        int

	// lists render straight into the document instead of a dialog
	noDialog bool
	// the list view never shows a profile link
	neverRenders bool
	hidden       map[ListKind]bool
	navigateErr  error

	// the next batch arrives only on the second sample taken at the
	// bottom, after the settle pause
	lateRows bool
	pending  int

	// the chosen container detaches before it can be marked
	markFails bool

	open      *fakeList
	scrollTop float64
	marked    bool
	target    string

	lastGrowth time.Time
	growths    int
	navigated  []string
	opened     []ListKind
	presses    []string
	wheels     int
}

func newFakePage(clock *humanize.ManualClock, user string, followers, following []string) *fakePage {
	return &fakePage{
		clock: clock,
		user:  user,
		lists: map[ListKind]*fakeList{
			Followers: {ids: followers},
			Following: {ids: following},
		},
		itemHeight:   48,
		clientHeight: 480,
		batch:        12,
		hidden:       map[ListKind]bool{},
	}
}

func (p *fakePage) dialogOpen() bool {
	return p.open != nil && !p.noDialog
}

func (p *fakePage) scrollHeight() float64 {
	if p.open == nil {
		return 0
	}
	return float64(p.open.loaded) * p.itemHeight
}

func (p *fakePage) markerSelector() string {
	return fmt.Sprintf(`[%s="1"]`, ScrollMarker)
}

func (p *fakePage) hrefs() []string {
	hrefs := []string{"/", "/" + p.user + "/followers/", "/explore/tags/go/"}
	if p.open == nil || p.neverRenders {
		return hrefs
	}
	for i := 0; i < p.open.loaded; i++ {
		h := "/" + p.open.id(i) + "/"
		// avatar and name both link to the profile
		hrefs = append(hrefs, h, h)
	}
	return hrefs
}

func (p *fakePage) openList(kind ListKind) {
	l := p.lists[kind]
	l.loaded = min(p.batch, l.total())
	p.open = l
	p.scrollTop = 0
	p.marked = false
	p.pending = 0
	p.opened = append(p.opened, kind)
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return p.navigateErr
}

func (p *fakePage) WaitFor(ctx context.Context, js string, timeout time.Duration, args ...interface{}) error {
	if js != listViewReadyJS {
		return fmt.Errorf("unexpected predicate")
	}
	if len(ExtractIdentifiers(p.hrefs())) > 0 && p.open != nil {
		return nil
	}
	_ = p.clock.Sleep(ctx, timeout)
	return fmt.Errorf("list view: %w", ErrWaitTimeout)
}

func (p *fakePage) Evaluate(ctx context.Context, js string, out interface{}, args ...interface{}) error {
	var v interface{}

	switch js {
	case scrollCandidatesJS:
		report := candidateReport{HasDialog: p.dialogOpen()}
		if report.HasDialog {
			report.Candidates = []Candidate{
				{Index: 0, OverflowY: "hidden", ScrollHeight: 900, ClientHeight: 480},
				{Index: 1, OverflowY: "auto", ScrollHeight: 483, ClientHeight: 480},
				{Index: fakeMainIndex, OverflowY: "auto", ScrollHeight: p.scrollHeight(), ClientHeight: p.clientHeight},
				{Index: 3, OverflowY: "scroll", ScrollHeight: 100, ClientHeight: 100},
			}
		}
		v = report
	case markContainerJS:
		p.marked = !p.markFails && p.dialogOpen() && args[0] == fakeMainIndex && args[1] == ScrollMarker
		v = p.marked
	case scrollSampleJS:
		if p.pending > 0 {
			p.pending++
			if p.pending > 2 {
				p.grow()
				p.pending = 0
			}
		}
		sample := scrollSample{Hrefs: p.hrefs()}
		if args[0] == p.markerSelector() && p.marked && p.dialogOpen() {
			sample.Found = true
			sample.ScrollTop = p.scrollTop
			sample.ScrollHeight = p.scrollHeight()
			sample.ClientHeight = p.clientHeight
		}
		v = sample
	case linkHrefsJS:
		v = p.hrefs()
	default:
		return fmt.Errorf("unexpected script")
	}

	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *fakePage) triggerKind(selector string) (ListKind, bool) {
	for _, kind := range []ListKind{Followers, Following} {
		if selector == TriggerSelector(p.user, kind) {
			return kind, true
		}
	}
	return "", false
}

func (p *fakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if kind, ok := p.triggerKind(selector); ok && !p.hidden[kind] && p.open == nil {
		return nil
	}
	if selector == p.markerSelector() && p.marked {
		return nil
	}
	_ = p.clock.Sleep(ctx, timeout)
	return fmt.Errorf("%s: %w", selector, ErrWaitTimeout)
}

func (p *fakePage) BoundingBox(ctx context.Context, selector string) (*Box, error) {
	p.target = selector
	if selector == p.markerSelector() {
		return &Box{X: 400, Y: 200, Width: 400, Height: p.clientHeight}, nil
	}
	return &Box{X: 500, Y: 120, Width: 90, Height: 18}, nil
}

func (p *fakePage) MoveMouse(ctx context.Context, x, y float64, steps int) error {
	return nil
}

func (p *fakePage) Click(ctx context.Context, x, y float64) error {
	if kind, ok := p.triggerKind(p.target); ok {
		p.openList(kind)
	}
	return nil
}

func (p *fakePage) Wheel(ctx context.Context, deltaY float64) error {
	if p.open == nil || !p.marked {
		return nil
	}
	p.wheels++

	maxTop := p.scrollHeight() - p.clientHeight
	if maxTop < 0 {
		maxTop = 0
	}
	p.scrollTop = min(p.scrollTop+deltaY, maxTop)

	if p.scrollTop+p.clientHeight >= p.scrollHeight()-1 && p.open.loaded < p.open.total() {
		if p.lateRows {
			if p.pending == 0 {
				p.pending = 1
			}
		} else {
			p.grow()
		}
	}
	return nil
}

func (p *fakePage) grow() {
	p.open.loaded = min(p.open.loaded+p.batch, p.open.total())
	p.lastGrowth = p.clock.Now()
	p.growths++
}

func (p *fakePage) Press(ctx context.Context, key string) error {
	p.presses = append(p.presses, key)
	if key == KeyEscape {
		p.open = nil
		p.marked = false
		p.scrollTop = 0
	}
	return nil
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return out
}
