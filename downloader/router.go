package downloader

import "context"

// Router sends each URL to the headless downloader when the site needs it and to the plain one otherwise.
type Router struct {
	plain        Downloader
	headless     Downloader
	usesHeadless func(url string) bool
}

// NewRouter builds a Router. A nil headless downloader routes everything to plain.
func NewRouter(plain, headless Downloader, usesHeadless func(url string) bool) *Router {
	return &Router{
		plain:        plain,
		headless:     headless,
		usesHeadless: usesHeadless,
	}
}

// Download dispatches url to the matching downloader.
func (r *Router) Download(ctx context.Context, url string) (string, error) {
	if r.headless != nil && r.usesHeadless != nil && r.usesHeadless(url) {
		return r.headless.Download(ctx, url)
	}
	return r.plain.Download(ctx, url)
}
