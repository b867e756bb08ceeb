// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Anicat is the canonical application identifier used for filesystem paths and CLI branding.
	Anicat = "anicat"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent string sent to metadata sites.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Accept is the Accept header value sent alongside UserAgent.
	Accept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)
