package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdiff/pkg/humanize"
	"igdiff/pkg/logger"
)

type scrollFixture struct {
	clock    *humanize.ManualClock
	page     *fakePage
	scroller *Scroller
	handle   *ScrollHandle
}

func newScrollFixture(t *testing.T, list *fakeList, cfg ScrollerConfig) *scrollFixture {
	t.Helper()

	clock := humanize.NewManualClock(time.Unix(1700000000, 0))
	page := newFakePage(clock, "me", nil, nil)
	page.lists[Followers] = list
	page.openList(Followers)

	handle, err := NewLocator(page, 5, logger.NewNopLogger()).Locate(context.Background())
	require.NoError(t, err)

	h := humanize.New(page, clock, humanize.NewRandom(42), humanize.DefaultProfile())
	return &scrollFixture{
		clock:    clock,
		page:     page,
		scroller: NewScroller(page, h, clock, cfg, logger.NewNopLogger()),
		handle:   handle,
	}
}

func TestScrollCollectsWholeList(t *testing.T) {
	f := newScrollFixture(t, &fakeList{ids: names("u", 200)}, DefaultScrollerConfig())

	stats, err := f.scroller.Scroll(context.Background(), f.handle, Followers)
	require.NoError(t, err)

	assert.True(t, stats.Converged)
	assert.Equal(t, 200, stats.UniqueCount)
	assert.Equal(t, 200, f.page.open.loaded)
	assert.Greater(t, stats.Steps, DefaultScrollerConfig().MinSteps)
	assert.Less(t, stats.Steps, DefaultScrollerConfig().MaxSteps)
	assert.Equal(t, stats.Steps, f.page.wheels)
	assert.Positive(t, stats.Duration)
}

func TestScrollConvergenceTiming(t *testing.T) {
	cfg := DefaultScrollerConfig()
	cfg.MinSteps = 0
	cfg.PauseEvery = 0

	for _, seed := range []int{60, 137, 250} {
		f := newScrollFixture(t, &fakeList{ids: names("u", seed)}, cfg)

		stats, err := f.scroller.Scroll(context.Background(), f.handle, Followers)
		require.NoError(t, err)
		require.True(t, stats.Converged)
		assert.Equal(t, seed, stats.UniqueCount)

		quiet := f.clock.Now().Sub(f.page.lastGrowth)
		assert.GreaterOrEqual(t, quiet, cfg.QuietPeriod)
		// last growth is observed one step later, and the bottom check
		// runs once per step plus settle
		assert.Less(t, quiet, cfg.QuietPeriod+2*cfg.StepPause+cfg.SettlePause)
	}
}

func TestScrollSeesRowsArrivingAfterSettle(t *testing.T) {
	cfg := DefaultScrollerConfig()
	cfg.MinSteps = 0
	cfg.PauseEvery = 0

	f := newScrollFixture(t, &fakeList{ids: names("u", 120)}, cfg)
	f.page.lateRows = true

	stats, err := f.scroller.Scroll(context.Background(), f.handle, Followers)
	require.NoError(t, err)

	require.True(t, stats.Converged)
	assert.Equal(t, 120, stats.UniqueCount)
	assert.Equal(t, 120, f.page.open.loaded)
	// every batch after the first came in on a post-settle sample
	assert.Equal(t, 9, f.page.growths)

	quiet := f.clock.Now().Sub(f.page.lastGrowth)
	assert.GreaterOrEqual(t, quiet, cfg.QuietPeriod)
	assert.Less(t, quiet, cfg.QuietPeriod+2*cfg.StepPause+cfg.SettlePause)
}

func TestScrollStopsAtStepCap(t *testing.T) {
	cfg := DefaultScrollerConfig()
	cfg.MaxSteps = 40

	f := newScrollFixture(t, &fakeList{endless: true}, cfg)
	tl := logger.NewTestLogger()
	f.scroller.log = tl

	stats, err := f.scroller.Scroll(context.Background(), f.handle, Followers)
	require.NoError(t, err)

	assert.False(t, stats.Converged)
	assert.Equal(t, 40, stats.Steps)
	assert.Equal(t, 40, f.page.wheels)
	assert.Greater(t, stats.UniqueCount, 12)
	assert.Len(t, tl.GetMessagesByLevel("WARN"), 1)
}

func TestScrollExtraPause(t *testing.T) {
	cfg := DefaultScrollerConfig()
	cfg.MaxSteps = 45
	cfg.StepPause = 0
	cfg.SettlePause = 0
	cfg.ExtraPause = time.Second

	f := newScrollFixture(t, &fakeList{endless: true}, cfg)
	before := f.clock.Slept()

	_, err := f.scroller.Scroll(context.Background(), f.handle, Followers)
	require.NoError(t, err)

	// steps 22 and 44 are followed by the extra pause; the rest is the
	// pre-scroll hover pause
	extra := f.clock.Slept() - before
	assert.GreaterOrEqual(t, extra, 2*time.Second)
	assert.Less(t, extra, 2*time.Second+300*time.Millisecond)
}

func TestSampleAtBottom(t *testing.T) {
	cfg := DefaultScrollerConfig()
	f := newScrollFixture(t, &fakeList{ids: names("u", 12)}, cfg)

	// twelve rows of 48px in a 480px viewport: 96px of overflow
	snap, err := f.scroller.Sample(context.Background(), f.handle)
	require.NoError(t, err)
	assert.Equal(t, 12, snap.UniqueCount)
	assert.False(t, snap.AtBottom)

	f.page.scrollTop = 92
	snap, err = f.scroller.Sample(context.Background(), f.handle)
	require.NoError(t, err)
	assert.True(t, snap.AtBottom)

	f.page.scrollTop = 91
	snap, err = f.scroller.Sample(context.Background(), f.handle)
	require.NoError(t, err)
	assert.False(t, snap.AtBottom)
}

func TestScrollHonorsCancellation(t *testing.T) {
	f := newScrollFixture(t, &fakeList{endless: true}, DefaultScrollerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.scroller.Scroll(ctx, f.handle, Followers)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.page.wheels)
}
