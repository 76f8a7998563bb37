package browser

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "igdiff/pkg/errors"
	"igdiff/pkg/logger"
)

func TestCloseReturnsBrowserResult(t *testing.T) {
	var killed atomic.Bool
	closeErr := errors.New("already closed")

	s := &Session{
		log:          logger.NewNopLogger(),
		closeBrowser: func() error { return closeErr },
		kill:         func() { killed.Store(true) },
		grace:        time.Second,
	}

	assert.Equal(t, closeErr, s.Close())
	assert.False(t, killed.Load())
}

func TestCloseKillsHungBrowser(t *testing.T) {
	var killed atomic.Bool
	release := make(chan struct{})
	defer close(release)

	tl := logger.NewTestLogger()
	s := &Session{
		log: tl,
		closeBrowser: func() error {
			<-release
			return nil
		},
		kill:  func() { killed.Store(true) },
		grace: 20 * time.Millisecond,
	}

	err := s.Close()
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeBrowser))
	assert.True(t, killed.Load())
	assert.True(t, tl.HasMessage("Component stopped"))
}
