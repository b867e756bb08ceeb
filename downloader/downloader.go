// Package downloader fetches raw page content from metadata sites.
package downloader

import (
	"context"
	"errors"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/log"
)

var (
	// ErrInvalidURL is returned without any request for blank or non-http(s) URLs.
	ErrInvalidURL = errors.New("invalid url")

	// ErrRetryLimit is returned when a rate-limited request exhausted its configured retries.
	ErrRetryLimit = errors.New("rate limit retries exhausted")
)

// Downloader fetches the raw content behind a URL.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// Func adapts a plain function to the Downloader interface.
type Func func(ctx context.Context, url string) (string, error)

// Download calls f.
func (f Func) Download(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// validate returns the trimmed URL, or ErrInvalidURL after logging it.
func validate(raw string) (string, error) {
	link := anime.NewInfoLink(raw)
	if !link.Valid() {
		log.WithField("url", raw).Warn("refusing to download invalid url")
		return "", ErrInvalidURL
	}
	return link.String(), nil
}
