package extractor

import (
	"github.com/anisan-cli/anicat/anime"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Registry dispatches URLs to extractors in registration order; the first responsible one wins.
type Registry struct {
	extractors []Extractor
}

// NewRegistry returns a registry holding extractors in the given order.
func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Default returns the registry of all built-in sites.
func Default() *Registry {
	return NewRegistry(NewMyAnimeList(), NewAniSearch())
}

// Extractors returns the registered extractors in dispatch order.
func (r *Registry) Extractors() []Extractor {
	return r.extractors
}

// For returns the first extractor responsible for url.
func (r *Registry) For(url string) mo.Option[Extractor] {
	e, ok := lo.Find(r.extractors, func(e Extractor) bool {
		return e.IsResponsible(url)
	})
	if !ok {
		return mo.None[Extractor]()
	}
	return mo.Some(e)
}

// ListerFor returns the first responsible extractor if it can walk listings.
func (r *Registry) ListerFor(url string) mo.Option[Lister] {
	e, ok := r.For(url).Get()
	if !ok {
		return mo.None[Lister]()
	}

	l, ok := e.(Lister)
	if !ok {
		return mo.None[Lister]()
	}
	return mo.Some(l)
}

// Normalize canonicalizes link with its responsible extractor, or returns it unchanged.
func (r *Registry) Normalize(link anime.InfoLink) anime.InfoLink {
	e, ok := r.For(link.String()).Get()
	if !ok {
		return link
	}
	return anime.NewInfoLink(e.Normalize(link.String()))
}

// UsesHeadless reports whether the site of url must be rendered by a browser.
func (r *Registry) UsesHeadless(url string) bool {
	e, ok := r.For(url).Get()
	return ok && e.UsesHeadless()
}
