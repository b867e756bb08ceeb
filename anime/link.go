// Package anime defines the data model shared by the metadata cache and the crawlers.
package anime

import (
	"net/url"
	"strings"
)

// InfoLink identifies one anime on a metadata site.
// Two links are equal only if their URL strings are equal; canonical forms are produced by extractors.
type InfoLink struct {
	url string
}

// NewInfoLink wraps raw, trimming surrounding whitespace.
func NewInfoLink(raw string) InfoLink {
	return InfoLink{url: strings.TrimSpace(raw)}
}

// String returns the wrapped URL.
func (l InfoLink) String() string {
	return l.url
}

// Present reports whether the link is non-blank.
func (l InfoLink) Present() bool {
	return l.url != ""
}

// Valid reports whether the link is present and parses as an absolute http(s) URL.
func (l InfoLink) Valid() bool {
	if !l.Present() {
		return false
	}

	u, err := url.Parse(l.url)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Host returns the lowercased host name without a leading "www.", or an empty string for invalid links.
func (l InfoLink) Host() string {
	u, err := url.Parse(l.url)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// MarshalText implements encoding.TextMarshaler so links serialize as plain strings.
func (l InfoLink) MarshalText() ([]byte, error) {
	return []byte(l.url), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *InfoLink) UnmarshalText(text []byte) error {
	*l = NewInfoLink(string(text))
	return nil
}
