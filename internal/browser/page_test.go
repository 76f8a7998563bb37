package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdiff/pkg/config"
	"igdiff/pkg/graph"
	"igdiff/pkg/logger"
)

func TestTimeoutErr(t *testing.T) {
	live := context.Background()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	deadline := fmt.Errorf("eval: %w", context.DeadlineExceeded)

	assert.NoError(t, timeoutErr(live, nil))
	assert.ErrorIs(t, timeoutErr(live, deadline), graph.ErrWaitTimeout)
	assert.NotErrorIs(t, timeoutErr(cancelled, deadline), graph.ErrWaitTimeout)

	other := errors.New("target closed")
	assert.Equal(t, other, timeoutErr(live, other))
}

func TestPressRejectsUnknownKeys(t *testing.T) {
	p := &Page{}
	err := p.Press(context.Background(), "F13")
	assert.EqualError(t, err, `unsupported key "F13"`)
}

const fixtureHTML = `<!doctype html>
<html><body>
<a id="shown" href="/someone/" style="display:block;width:120px;height:20px">someone</a>
<div id="gone" style="display:none">hidden</div>
</body></html>`

// launchLocal opens fixtureHTML in a headless browser. It needs a locally
// installed Chrome or Chromium and is skipped in short mode.
func launchLocal(t *testing.T) *Page {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no local Chrome or Chromium")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, fixtureHTML)
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	session, err := Launch(ctx, config.BrowserConfig{
		Headless:          true,
		BinPath:           bin,
		UserDataDir:       t.TempDir(),
		LaunchAttempts:    1,
		NavigationTimeout: 30 * time.Second,
	}, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	page := session.Page()
	require.NoError(t, page.Navigate(ctx, srv.URL))
	return page
}

func TestPageAgainstBrowser(t *testing.T) {
	page := launchLocal(t)
	ctx := context.Background()

	t.Run("visible element", func(t *testing.T) {
		require.NoError(t, page.WaitVisible(ctx, "#shown", 5*time.Second))

		box, err := page.BoundingBox(ctx, "#shown")
		require.NoError(t, err)
		assert.InDelta(t, 120, box.Width, 1)
		assert.InDelta(t, 20, box.Height, 1)
	})

	t.Run("hidden element has no box", func(t *testing.T) {
		_, err := page.BoundingBox(ctx, "#gone")
		assert.Error(t, err)
	})

	t.Run("missing element has no box", func(t *testing.T) {
		_, err := page.BoundingBox(ctx, "#nothing")
		assert.EqualError(t, err, "no element matches #nothing")
	})

	t.Run("waiting on a hidden element times out", func(t *testing.T) {
		err := page.WaitVisible(ctx, "#gone", 300*time.Millisecond)
		assert.ErrorIs(t, err, graph.ErrWaitTimeout)
	})

	t.Run("waiting on a missing element times out", func(t *testing.T) {
		err := page.WaitVisible(ctx, "#nothing", 300*time.Millisecond)
		assert.ErrorIs(t, err, graph.ErrWaitTimeout)
	})

	t.Run("predicate evaluation", func(t *testing.T) {
		var n int
		require.NoError(t, page.Evaluate(ctx, `() => document.querySelectorAll("a").length`, &n))
		assert.Equal(t, 1, n)

		err := page.WaitFor(ctx, `() => false`, 300*time.Millisecond)
		assert.ErrorIs(t, err, graph.ErrWaitTimeout)
	})
}
