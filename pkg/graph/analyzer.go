package graph

import (
	"context"
	"net/url"
	"strings"

	errs "igdiff/pkg/errors"
	"igdiff/pkg/humanize"
	"igdiff/pkg/logger"
)

// Counts holds the size of each collected list
type Counts struct {
	Followers int `json:"followers" yaml:"followers"`
	Following int `json:"following" yaml:"following"`
}

// Result is the outcome of one analysis run
type Result struct {
	Counts Counts `json:"counts" yaml:"counts"`
	// NotFollowingYou lists accounts the user follows that do not follow
	// back, in the order they appear in the following list
	NotFollowingYou []string `json:"notFollowingYou" yaml:"notFollowingYou"`
}

// Options configures an Analyzer
type Options struct {
	BaseURL   string
	Scroller  ScrollerConfig
	Collector CollectorConfig
	Input     humanize.Profile

	// NavigationSettle is the pause after the profile page loads
	NavigationSettle humanize.Range
	// BetweenLists is the pause after the followers dialog closes
	BetweenLists humanize.Range

	Clock  humanize.Clock
	Random *humanize.Random
}

// DefaultOptions returns options tuned for the live site
func DefaultOptions() Options {
	return Options{
		BaseURL:          "https://www.instagram.com",
		Scroller:         DefaultScrollerConfig(),
		Collector:        DefaultCollectorConfig(),
		Input:            humanize.DefaultProfile(),
		NavigationSettle: humanize.Range{Min: 700, Max: 1400},
		BetweenLists:     humanize.Range{Min: 500, Max: 900},
		Clock:            humanize.RealClock{},
	}
}

// Analyzer computes which followed accounts do not follow a profile back
type Analyzer struct {
	page      Page
	humanizer *humanize.Humanizer
	collector *Collector
	opts      Options
	log       logger.Logger
}

// NewAnalyzer wires the input simulator, locator, scroller and collector
// around page
func NewAnalyzer(page Page, opts Options, log logger.Logger) *Analyzer {
	if opts.Clock == nil {
		opts.Clock = humanize.RealClock{}
	}
	if opts.Random == nil {
		opts.Random = humanize.NewRandom(0)
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	h := humanize.New(page, opts.Clock, opts.Random, opts.Input)
	scroller := NewScroller(page, h, opts.Clock, opts.Scroller, log)

	return &Analyzer{
		page:      page,
		humanizer: h,
		collector: NewCollector(page, h, opts.Clock, scroller, opts.Collector, log),
		opts:      opts,
		log:       log,
	}
}

// ProfileURL returns the profile page of username under baseURL
func ProfileURL(baseURL, username string) (string, error) {
	u, err := url.JoinPath(strings.TrimRight(baseURL, "/"), username)
	if err != nil {
		return "", err
	}
	return u + "/", nil
}

// Run navigates to username's profile, collects followers then following,
// and returns the following list minus the followers list. The followers
// dialog is closed before the following dialog is opened.
func (a *Analyzer) Run(ctx context.Context, username string) (*Result, error) {
	profileURL, err := ProfileURL(a.opts.BaseURL, username)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNavigation, a.opts.BaseURL, "invalid profile URL", err)
	}

	logger.LogComponentStart(a.log, "analyzer", map[string]interface{}{
		"username": username,
		"url":      profileURL,
	})

	if err := a.page.Navigate(ctx, profileURL); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNavigation, profileURL, "failed to load profile", err)
	}
	if err := a.humanizer.Pause(ctx, a.opts.NavigationSettle); err != nil {
		return nil, err
	}

	followers, err := a.collector.Collect(ctx, username, Followers)
	if err != nil {
		return nil, err
	}
	if err := a.humanizer.Pause(ctx, a.opts.BetweenLists); err != nil {
		return nil, err
	}

	following, err := a.collector.Collect(ctx, username, Following)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Counts: Counts{
			Followers: len(followers.Identifiers),
			Following: len(following.Identifiers),
		},
		NotFollowingYou: Diff(following.Identifiers, followers.Identifiers),
	}

	logger.LogComponentStop(a.log, "analyzer", "completed")
	return result, nil
}
