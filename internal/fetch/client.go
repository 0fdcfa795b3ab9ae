package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Response is a single HTTP exchange. StatusCode is set for any completed
// HTTP round trip, including non-2xx responses.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client performs one HTTP GET. Network-level failures return an error;
// HTTP-level failures return a Response carrying the status code.
type Client interface {
	Get(ctx context.Context, url string) (Response, error)
}

// CollyClient implements Client with a Colly collector configured with a
// browser-like request identity.
type CollyClient struct {
	baseCollector *colly.Collector
}

// ClientConfig controls collector behavior.
type ClientConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// NewCollyClient constructs a configured Colly-based client.
func NewCollyClient(cfg ClientConfig) *CollyClient {
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	base.SetRequestTimeout(timeout)
	return &CollyClient{baseCollector: base}
}

// Get fetches rawURL once via a collector clone.
func (c *CollyClient) Get(ctx context.Context, rawURL string) (Response, error) {
	collector := c.baseCollector.Clone()

	var (
		result   Response
		gotHTTP  bool
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	collector.OnResponse(func(r *colly.Response) {
		result = Response{
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
		gotHTTP = true
	})

	collector.OnError(func(r *colly.Response, err error) {
		// Colly routes non-2xx responses through OnError; a populated
		// status code still counts as a completed HTTP exchange.
		if r != nil && r.StatusCode != 0 {
			result = Response{
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
			}
			gotHTTP = true
			return
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return Response{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case visitErr := <-done:
		if gotHTTP {
			return result, nil
		}
		if fetchErr != nil {
			return Response{}, fetchErr
		}
		if visitErr != nil {
			return Response{}, visitErr
		}
		return Response{}, errors.New("fetch produced no response")
	}
}
