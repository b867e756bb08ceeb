package crawler

import (
	"context"
	"sort"

	"github.com/anisan-cli/anicat/anime"
)

const (
	// DefaultLimit caps the number of recommended titles.
	DefaultLimit = 100

	// DefaultCutoff is the share of all recommendation votes, in percent, the selected titles may add up to.
	DefaultCutoff = 80
)

// Recommendations aggregates the user recommendations of a list of titles and reports the most recommended ones.
type Recommendations struct {
	control

	metadata Metadata
	lists    Lists
	limit    int
	cutoff   int
}

// NewRecommendations returns an aggregator. Non-positive limit or a cutoff outside (0, 100] use the defaults.
func NewRecommendations(metadata Metadata, lists Lists, limit, cutoff int) *Recommendations {
	if lists == nil {
		lists = noLists{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if cutoff <= 0 || cutoff > 100 {
		cutoff = DefaultCutoff
	}

	return &Recommendations{
		metadata: metadata,
		lists:    lists,
		limit:    limit,
		cutoff:   cutoff,
	}
}

// Run sums the recommendation counts of every title in primary, skipping titles that are in primary or any
// user list, ranks them and resolves the top of the ranking. Progress is reported per scanned title
// first, then per resolved title.
func (r *Recommendations) Run(ctx context.Context, primary []anime.InfoLink, obs Observer) Result {
	obs = orNop(obs)
	registry := r.metadata.Registry()

	inputs := make(map[anime.InfoLink]struct{}, len(primary))
	for _, link := range primary {
		inputs[registry.Normalize(link)] = struct{}{}
	}

	var (
		order  []anime.InfoLink
		totals = make(map[anime.InfoLink]int)
	)

	for i, link := range primary {
		if !link.Present() {
			continue
		}
		if r.stopped(ctx) {
			return finish(obs, nil, true)
		}

		for _, rec := range r.metadata.Recommendations(ctx, link).Sorted() {
			if _, ok := inputs[rec.Link]; ok || listed(r.lists, rec.Link) {
				continue
			}

			if _, ok := totals[rec.Link]; !ok {
				order = append(order, rec.Link)
			}
			totals[rec.Link] += rec.Amount
		}

		obs.OnProgress(i+1, len(primary))
	}

	ranked := rank(order, totals, r.limit, r.cutoff)

	var found []*anime.Anime
	for i, rec := range ranked {
		if r.stopped(ctx) {
			return finish(obs, found, true)
		}

		if a, ok := r.metadata.Anime(ctx, rec.Link).Get(); ok {
			found = append(found, a)
			obs.OnFound(a)
		}
		obs.OnProgress(i+1, len(ranked))
	}

	return finish(obs, found, false)
}

// rank orders links by total descending, ties in first-seen order, and keeps the longest prefix of at
// most limit entries whose running sum stays within cutoff percent of the grand total.
// The first entry is always kept.
func rank(order []anime.InfoLink, totals map[anime.InfoLink]int, limit, cutoff int) []anime.Recommendation {
	recs := make([]anime.Recommendation, 0, len(order))
	grand := 0
	for _, link := range order {
		recs = append(recs, anime.Recommendation{Link: link, Amount: totals[link]})
		grand += totals[link]
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Amount > recs[j].Amount
	})

	var (
		selected []anime.Recommendation
		running  int
	)
	for _, rec := range recs {
		if len(selected) >= limit {
			break
		}
		if len(selected) > 0 && (running+rec.Amount)*100 > grand*cutoff {
			break
		}

		selected = append(selected, rec)
		running += rec.Amount
	}

	return selected
}
