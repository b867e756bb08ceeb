// Package crawler drives the warm-up, related-graph, tag listing and recommendation crawls on top of the metadata cache.
//
// Crawls are cooperative: Cancel only stops new work from starting, downloads already in flight run to completion.
package crawler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/extractor"
	"github.com/samber/mo"
)

// Metadata is the cache the crawlers read from.
type Metadata interface {
	Anime(ctx context.Context, link anime.InfoLink) mo.Option[*anime.Anime]
	Related(ctx context.Context, link anime.InfoLink) anime.RelatedSet
	Recommendations(ctx context.Context, link anime.InfoLink) anime.Recommendations
	Download(ctx context.Context, url string) (string, error)
	Registry() *extractor.Registry
}

// Lists answers whether the user already classified a title.
type Lists interface {
	AnimeListContains(link anime.InfoLink) bool
	WatchListContains(link anime.InfoLink) bool
	FilterListContains(link anime.InfoLink) bool
}

type noLists struct{}

func (noLists) AnimeListContains(anime.InfoLink) bool  { return false }
func (noLists) WatchListContains(anime.InfoLink) bool  { return false }
func (noLists) FilterListContains(anime.InfoLink) bool { return false }

// listed reports whether link is in any of the user's lists.
func listed(lists Lists, link anime.InfoLink) bool {
	return lists.AnimeListContains(link) || lists.WatchListContains(link) || lists.FilterListContains(link)
}

// Result is the outcome of a crawl. A cancelled crawl carries what it found before stopping.
type Result struct {
	Anime     []*anime.Anime `json:"anime" jsonschema:"description=Discovered anime in discovery order."`
	Cancelled bool           `json:"cancelled" jsonschema:"description=Whether the crawl was stopped before it finished."`
}

// Observer receives crawl notifications.
type Observer interface {
	OnProgress(done, total int)
	OnFound(a *anime.Anime)
	OnFinish(result Result)
}

// Observers adapts optional callbacks to Observer. Nil fields are skipped.
type Observers struct {
	Progress func(done, total int)
	Found    func(a *anime.Anime)
	Finish   func(result Result)
}

func (o Observers) OnProgress(done, total int) {
	if o.Progress != nil {
		o.Progress(done, total)
	}
}

func (o Observers) OnFound(a *anime.Anime) {
	if o.Found != nil {
		o.Found(a)
	}
}

func (o Observers) OnFinish(result Result) {
	if o.Finish != nil {
		o.Finish(result)
	}
}

func orNop(obs Observer) Observer {
	if obs == nil {
		return Observers{}
	}
	return obs
}

// syncObserver serializes notifications coming from worker goroutines.
type syncObserver struct {
	mu  sync.Mutex
	obs Observer
}

func (s *syncObserver) OnProgress(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs.OnProgress(done, total)
}

func (s *syncObserver) OnFound(a *anime.Anime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs.OnFound(a)
}

func (s *syncObserver) OnFinish(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs.OnFinish(result)
}

// control is the cancellation flag shared by all crawlers.
type control struct {
	cancelled atomic.Bool
}

// Cancel asks a running crawl to stop before its next unit of work.
func (c *control) Cancel() {
	c.cancelled.Store(true)
}

// Reset clears a previous Cancel so the crawler can run again.
func (c *control) Reset() {
	c.cancelled.Store(false)
}

func (c *control) stopped(ctx context.Context) bool {
	return c.cancelled.Load() || ctx.Err() != nil
}

func finish(obs Observer, found []*anime.Anime, cancelled bool) Result {
	result := Result{Anime: found, Cancelled: cancelled}
	obs.OnFinish(result)
	return result
}
