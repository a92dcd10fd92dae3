package script

// withAttempts runs op up to the given attempt budget and returns the
// first success. retryable decides whether a failure consumes another
// attempt or aborts immediately; the last error is returned once the
// budget is exhausted. No backoff is added beyond what the operation's
// own transport layer enforces.
func withAttempts(attempts int, op func(attempt int) error, retryable func(error) bool) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(attempt)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
