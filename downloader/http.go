package downloader

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/log"
	"github.com/anisan-cli/anicat/network"
	"github.com/sirupsen/logrus"
)

const (
	minBackoff = 4 * time.Second
	maxBackoff = 8 * time.Second
)

// HTTP downloads pages with a plain GET carrying a minimal header set.
// Rate-limited responses (429) are retried after a randomized backoff.
type HTTP struct {
	client     *http.Client
	retryLimit int
	backoff    func() time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// HTTPOption configures an HTTP downloader.
type HTTPOption func(*HTTP)

// WithClient sets the HTTP client used for requests.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// WithRetryLimit bounds the number of retries after 429 responses.
// Zero or a negative value retries without limit.
func WithRetryLimit(n int) HTTPOption {
	return func(h *HTTP) {
		h.retryLimit = n
	}
}

// WithBackoff replaces the randomized 4-8s backoff.
func WithBackoff(f func() time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.backoff = f
	}
}

// WithSleep replaces the context-aware sleep used between retries.
func WithSleep(f func(ctx context.Context, d time.Duration) error) HTTPOption {
	return func(h *HTTP) {
		h.sleep = f
	}
}

// NewHTTP returns an HTTP downloader using network.Client and unlimited 429 retries by default.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client:  network.Client,
		backoff: randomBackoff,
		sleep:   sleep,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Download fetches url. Non-success statuses other than 429 are logged and their body is returned as is.
func (h *HTTP) Download(ctx context.Context, url string) (string, error) {
	url, err := validate(url)
	if err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		body, status, err := h.get(ctx, url)
		if err != nil {
			return "", err
		}

		if status == http.StatusTooManyRequests {
			if h.retryLimit > 0 && attempt >= h.retryLimit {
				return "", fmt.Errorf("%w: %s", ErrRetryLimit, url)
			}

			wait := h.backoff()
			log.WithFields(logrus.Fields{"url": url, "wait": wait, "attempt": attempt + 1}).Warn("rate limited, backing off")
			if err := h.sleep(ctx, wait); err != nil {
				return "", err
			}
			continue
		}

		if status < 200 || status >= 300 {
			log.WithFields(logrus.Fields{"url": url, "status": status}).Warn("unexpected status code")
		}

		return body, nil
	}
}

func (h *HTTP) get(ctx context.Context, url string) (body string, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	req.Header = http.Header{}
	req.Host = req.URL.Host
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", constant.Accept)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return string(b), resp.StatusCode, nil
}

func randomBackoff() time.Duration {
	return minBackoff + rand.N(maxBackoff-minBackoff)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
