// Package browser launches a Chromium instance with go-rod and exposes its
// page as a graph.Page.
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"igdiff/pkg/config"
	errs "igdiff/pkg/errors"
	"igdiff/pkg/logger"
	"igdiff/pkg/retry"
)

// closeGrace bounds how long Close waits for the browser to exit
const closeGrace = 10 * time.Second

// Session is a launched browser with a single page
type Session struct {
	page *Page
	log  logger.Logger

	// closeBrowser asks the browser to exit; kill ends the process when it
	// does not do so within grace
	closeBrowser func() error
	kill         func()
	grace        time.Duration
}

type launched struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Launch starts the browser described by cfg and opens a blank page.
// The profile directory persists between runs so a logged-in session is
// reused. Launch and connect are retried with exponential backoff.
func Launch(ctx context.Context, cfg config.BrowserConfig, log logger.Logger) (*Session, error) {
	if cfg.UserDataDir != "" {
		if err := os.MkdirAll(cfg.UserDataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	logger.LogComponentStart(log, "browser", map[string]interface{}{
		"headless": cfg.Headless,
		"profile":  cfg.UserDataDir,
	})

	l, err := retry.DoWithResult(func() (*launched, error) {
		return connect(ctx, cfg)
	}, &retry.Config{
		MaxAttempts: cfg.LaunchAttempts,
		Backoff:     retry.DefaultExponentialBackoff(),
		Context:     ctx,
		Logger:      log.WithField("component", "browser"),
	})
	if err != nil {
		return nil, err
	}

	p, err := l.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = l.browser.Close()
		l.launcher.Kill()
		return nil, errs.Wrap(errs.ErrorTypeBrowser, "about:blank", "failed to open page", err)
	}

	return &Session{
		page:         NewPage(p, cfg.NavigationTimeout),
		log:          log,
		closeBrowser: l.browser.Close,
		kill:         l.launcher.Kill,
		grace:        closeGrace,
	}, nil
}

func connect(ctx context.Context, cfg config.BrowserConfig) (*launched, error) {
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Leakless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-first-run").
		Set("no-default-browser-check")

	if cfg.BinPath != "" {
		l = l.Bin(cfg.BinPath)
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}
	if cfg.StartMaximized {
		l = l.Set("start-maximized")
	}

	u, err := l.Launch()
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeBrowser, cfg.BinPath, "failed to launch browser", err)
	}

	// the window size decides the viewport, no device emulation
	b := rod.New().ControlURL(u).NoDefaultDevice()
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, errs.Wrap(errs.ErrorTypeBrowser, u, "failed to connect to browser", err)
	}
	return &launched{browser: b, launcher: l}, nil
}

// Page returns the session's page
func (s *Session) Page() *Page {
	return s.page
}

// Close shuts the browser down. When it has not exited within the grace
// period the process is killed.
func (s *Session) Close() error {
	done := make(chan error, 1)
	go func() { done <- s.closeBrowser() }()

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case err := <-done:
		logger.LogComponentStop(s.log, "browser", "closed")
		return err
	case <-timer.C:
		s.kill()
		logger.LogComponentStop(s.log, "browser", "killed")
		return errs.New(errs.ErrorTypeBrowser, "", fmt.Sprintf("browser did not close within %s", s.grace))
	}
}
