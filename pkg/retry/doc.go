// Package retry provides exponential backoff and retry logic for transient
// failures outside the collection pipeline, such as launching and connecting
// to the browser.
//
// Only typed errors whose type is retryable (see igdiff/pkg/errors) are
// retried by default:
//
//	err := retry.Do(func() error {
//		return launch()
//	}, &retry.Config{
//		MaxAttempts: 3,
//		Backoff:     retry.DefaultExponentialBackoff(),
//		Context:     ctx,
//		Logger:      log,
//	})
package retry
