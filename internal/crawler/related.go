package crawler

import (
	"context"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/util"
)

// Related walks the related-title graph from a seed list and reports titles not yet in any user list.
// The walk has no depth bound; it ends when every reachable title was visited.
type Related struct {
	control

	metadata Metadata
	lists    Lists
}

// NewRelated returns a graph crawler. A nil lists excludes nothing.
func NewRelated(metadata Metadata, lists Lists) *Related {
	if lists == nil {
		lists = noLists{}
	}

	return &Related{
		metadata: metadata,
		lists:    lists,
	}
}

type relatedWalk struct {
	toVisit util.Stack[anime.InfoLink]
	queued  map[anime.InfoLink]struct{}
	visited map[anime.InfoLink]struct{}
	found   map[anime.InfoLink]struct{}
	// dead holds links without metadata, so they are fetched once per walk
	dead   map[anime.InfoLink]struct{}
	result []*anime.Anime
}

// resolve fetches the metadata of link unless an earlier lookup in this walk came back empty.
func (r *Related) resolve(ctx context.Context, walk *relatedWalk, link anime.InfoLink) (*anime.Anime, bool) {
	if _, ok := walk.dead[link]; ok {
		return nil, false
	}

	a, ok := r.metadata.Anime(ctx, link).Get()
	if !ok {
		walk.dead[link] = struct{}{}
	}
	return a, ok
}

// Run explores depth first, visiting the seed in list order. Progress reports (visited, left to visit).
func (r *Related) Run(ctx context.Context, seed []anime.InfoLink, obs Observer) Result {
	obs = orNop(obs)
	registry := r.metadata.Registry()

	walk := relatedWalk{
		queued:  make(map[anime.InfoLink]struct{}),
		visited: make(map[anime.InfoLink]struct{}),
		found:   make(map[anime.InfoLink]struct{}),
		dead:    make(map[anime.InfoLink]struct{}),
	}

	for i := len(seed) - 1; i >= 0; i-- {
		link := registry.Normalize(seed[i])
		if !link.Present() {
			continue
		}
		if _, ok := walk.queued[link]; ok {
			continue
		}
		walk.queued[link] = struct{}{}
		walk.toVisit.Push(link)
	}

	for walk.toVisit.Len() > 0 {
		if r.stopped(ctx) {
			return finish(obs, walk.result, true)
		}

		link, _ := walk.toVisit.Pop()
		if _, ok := walk.visited[link]; ok {
			continue
		}

		if _, ok := r.resolve(ctx, &walk, link); ok {
			if r.stopped(ctx) {
				return finish(obs, walk.result, true)
			}

			if !r.expand(ctx, &walk, link, obs) {
				return finish(obs, walk.result, true)
			}
		}

		walk.visited[link] = struct{}{}
		obs.OnProgress(len(walk.visited), walk.toVisit.Len())
	}

	return finish(obs, walk.result, false)
}

// expand queues and reports the neighbours of link. It returns false when the crawl was cancelled.
func (r *Related) expand(ctx context.Context, walk *relatedWalk, link anime.InfoLink, obs Observer) bool {
	for _, next := range r.metadata.Related(ctx, link).Links() {
		if !next.Present() {
			continue
		}

		_, queued := walk.queued[next]
		_, visited := walk.visited[next]
		if !queued && !visited && !r.lists.FilterListContains(next) {
			walk.queued[next] = struct{}{}
			walk.toVisit.Push(next)
		}

		if _, ok := walk.found[next]; ok || listed(r.lists, next) {
			continue
		}

		if r.stopped(ctx) {
			return false
		}

		a, ok := r.resolve(ctx, walk, next)
		if !ok {
			continue
		}

		walk.found[next] = struct{}{}
		walk.result = append(walk.result, a)
		obs.OnFound(a)
	}

	return true
}
