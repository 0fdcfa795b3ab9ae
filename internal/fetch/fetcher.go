package fetch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexfield/poemcoder/internal/metrics"
	"github.com/lexfield/poemcoder/internal/poem"
)

// Error is returned when a page cannot be obtained by any means: every
// attempt failed and no usable cache entry exists.
type Error struct {
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempts", e.URL, e.StatusCode, e.Attempts)
	}
	return fmt.Sprintf("fetch %s: %v after %d attempts", e.URL, e.Err, e.Attempts)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves pages through the cache, falling back to the network
// with bounded retries. It implements poem.Fetcher.
type Fetcher struct {
	client Client
	cache  *Cache
	policy RetryPolicy
	clock  poem.Clock
	logger *zap.Logger
}

// New builds a cache-backed Fetcher.
func New(client Client, cache *Cache, policy RetryPolicy, clock poem.Clock, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  cache,
		policy: policy,
		clock:  clock,
		logger: logger,
	}
}

// Fetch returns the raw content for url. With useCache set, an existing
// cache entry is returned without touching the network; a cache read failure
// falls through to a fetch rather than failing. Successful fetches are
// cached best-effort.
func (f *Fetcher) Fetch(ctx context.Context, url string, useCache bool) ([]byte, error) {
	key := f.cache.Key(url)

	if useCache {
		if data, err := f.cache.Get(key); err == nil {
			metrics.ObserveCacheHit()
			f.logger.Debug("cache hit", zap.String("url", url), zap.String("key", key))
			return data, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < f.policy.MaxAttempts; attempt++ {
		resp, err := f.client.Get(ctx, url)
		if err != nil {
			metrics.ObserveFetchAttempt("error")
			lastErr = err
			f.logger.Warn("fetch attempt failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if attempt == f.policy.MaxAttempts-1 {
				// Last resort: serve a stale cache entry if one exists.
				if data, cacheErr := f.cache.Get(key); cacheErr == nil {
					f.logger.Info("serving stale cache entry after failed fetch", zap.String("url", url))
					return data, nil
				}
				break
			}
			f.clock.Sleep(f.policy.TransportWait())
			continue
		}

		switch f.policy.Classify(resp.StatusCode) {
		case OutcomeSuccess:
			metrics.ObserveFetchAttempt("success")
			if err := f.cache.Put(key, resp.Body); err != nil {
				// Cache-write failure must not fail the fetch.
				f.logger.Warn("cache write failed", zap.String("url", url), zap.Error(err))
			}
			return resp.Body, nil
		case OutcomeTransient:
			metrics.ObserveFetchAttempt("transient")
			lastErr = &Error{URL: url, StatusCode: resp.StatusCode, Attempts: attempt + 1}
			f.logger.Warn("transient response, backing off",
				zap.String("url", url),
				zap.Int("status_code", resp.StatusCode),
				zap.Int("attempt", attempt),
			)
			if attempt < f.policy.MaxAttempts-1 {
				f.clock.Sleep(f.policy.Backoff(attempt))
			}
		default:
			metrics.ObserveFetchAttempt("fatal")
			return nil, &Error{URL: url, StatusCode: resp.StatusCode, Attempts: attempt + 1}
		}
	}

	fetchErr := &Error{URL: url, Attempts: f.policy.MaxAttempts, Err: lastErr}
	if last, ok := lastErr.(*Error); ok {
		fetchErr = &Error{URL: url, StatusCode: last.StatusCode, Attempts: f.policy.MaxAttempts}
	}
	return nil, fetchErr
}
