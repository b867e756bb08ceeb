package cache

import (
	"context"
	"fmt"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/downloader"
	"github.com/anisan-cli/anicat/extractor"
	"github.com/samber/mo"
)

// Metadata caches anime records, related sets and recommendations per canonical link.
// Every link is normalized by its extractor before lookup, so all spellings of a title share one entry.
type Metadata struct {
	registry   *extractor.Registry
	downloader downloader.Downloader

	anime   *Store[*anime.Anime]
	related *Store[anime.RelatedSet]
	recs    *Store[anime.Recommendations]
}

// NewMetadata returns an empty cache that fetches pages with d and parses them with the extractors of registry.
func NewMetadata(registry *extractor.Registry, d downloader.Downloader) *Metadata {
	m := &Metadata{
		registry:   registry,
		downloader: d,
	}

	m.anime = NewStore("anime", m.loadAnime, func(a *anime.Anime) bool { return a == nil })
	m.related = NewStore("related", m.loadRelated, func(r anime.RelatedSet) bool { return len(r) == 0 })
	m.recs = NewStore("recommendations", m.loadRecommendations, func(r anime.Recommendations) bool { return len(r) == 0 })

	return m
}

// Registry returns the extractor registry used for dispatch.
func (m *Metadata) Registry() *extractor.Registry {
	return m.registry
}

// Download fetches a raw page through the cache's downloader without caching it.
func (m *Metadata) Download(ctx context.Context, url string) (string, error) {
	return m.downloader.Download(ctx, url)
}

// Anime returns the metadata of link. Blank links and pages without a title are absent.
func (m *Metadata) Anime(ctx context.Context, link anime.InfoLink) mo.Option[*anime.Anime] {
	if !link.Present() {
		return mo.None[*anime.Anime]()
	}

	a := m.anime.Get(ctx, m.registry.Normalize(link).String())
	if a == nil {
		return mo.None[*anime.Anime]()
	}
	return mo.Some(a)
}

// Related returns the titles related to link.
func (m *Metadata) Related(ctx context.Context, link anime.InfoLink) anime.RelatedSet {
	if !link.Present() {
		return anime.NewRelatedSet()
	}

	if r := m.related.Get(ctx, m.registry.Normalize(link).String()); r != nil {
		return r
	}
	return anime.NewRelatedSet()
}

// Recommendations returns the user recommendations for link.
func (m *Metadata) Recommendations(ctx context.Context, link anime.InfoLink) anime.Recommendations {
	if !link.Present() {
		return anime.Recommendations{}
	}

	if r := m.recs.Get(ctx, m.registry.Normalize(link).String()); r != nil {
		return r
	}
	return anime.Recommendations{}
}

// Len returns the number of cached anime records.
func (m *Metadata) Len() int {
	return m.anime.Len()
}

func (m *Metadata) extractorFor(url string) (extractor.Extractor, error) {
	e, ok := m.registry.For(url).Get()
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, extractor.ErrNoExtractor)
	}
	return e, nil
}

func (m *Metadata) loadAnime(ctx context.Context, url string) (*anime.Anime, error) {
	e, err := m.extractorFor(url)
	if err != nil {
		return nil, err
	}

	content, err := m.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	return e.ParseMetadata(anime.NewInfoLink(url), content)
}

func (m *Metadata) loadRelated(ctx context.Context, url string) (anime.RelatedSet, error) {
	e, err := m.extractorFor(url)
	if err != nil {
		return nil, err
	}

	content, err := m.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	return e.ParseRelated(anime.NewInfoLink(url), content)
}

func (m *Metadata) loadRecommendations(ctx context.Context, url string) (anime.Recommendations, error) {
	e, err := m.extractorFor(url)
	if err != nil {
		return nil, err
	}

	link := anime.NewInfoLink(url)
	content, err := m.downloader.Download(ctx, e.RecommendationsURL(link))
	if err != nil {
		return nil, err
	}

	return e.ParseRecommendations(link, content)
}
