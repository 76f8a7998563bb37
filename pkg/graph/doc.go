// Package graph collects the followers and following lists of a profile
// through a browser page and computes who does not follow back.
//
// Both lists are lazily loaded inside a modal dialog, so the package
// scrolls them until no new entries appear:
//
//   - Locator picks the dialog element with the largest scrollable overflow
//     and marks it with the data-igdiff-scroll attribute.
//   - Scroller wheel-scrolls that element, sampling the number of unique
//     profile links after every step. It stops once the element is at the
//     bottom and the count has been quiet for ScrollerConfig.QuietPeriod,
//     or after ScrollerConfig.MaxSteps steps.
//   - Extractor reads the "/<name>/" links and dedups them.
//   - Collector ties the above to one list: click, wait, locate, scroll,
//     extract, close.
//   - Analyzer runs followers then following and returns a Result.
//
// All browser access goes through the Page interface and all delays through
// a humanize.Clock, so the whole pipeline runs against fakes in tests:
//
//	opts := graph.DefaultOptions()
//	opts.Random = humanize.NewRandom(42)
//	result, err := graph.NewAnalyzer(page, opts, log).Run(ctx, "someone")
//
// Nothing in this package retries. Typed errors from igdiff/pkg/errors
// tell callers whether a failure is fatal.
package graph
