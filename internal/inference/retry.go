package inference

import (
	"context"
	"errors"
	"log"
	"time"
)

// retryClient retries transient failures with exponential backoff. Only
// ServiceUnavailable is transient; a malformed response gets one retry (a
// regenerate often fixes it), everything else returns immediately.
type retryClient struct {
	inner       Client
	maxAttempts int
}

func withRetry(c Client, maxAttempts int) Client {
	return &retryClient{inner: c, maxAttempts: maxAttempts}
}

func (r *retryClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	var lastErr error
	malformedRetried := false

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<uint(attempt-1)) * time.Second
			log.Printf("Retrying inference call in %v (attempt %d)", wait, attempt+1)
			select {
			case <-ctx.Done():
				return nil, ServiceUnavailable(ctx.Err())
			case <-time.After(wait):
			}
		}

		res, err := r.inner.Invoke(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !r.shouldRetry(err, &malformedRetried) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *retryClient) ModelID() string { return r.inner.ModelID() }

func (r *retryClient) shouldRetry(err error, malformedRetried *bool) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	switch KindOf(err) {
	case KindMalformedResponse:
		if *malformedRetried {
			return false
		}
		*malformedRetried = true
		return true
	case KindServiceUnavailable:
		return true
	default:
		return false
	}
}
