package crawler

import (
	"context"
	"runtime"
	"slices"
	"sync"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Warmup fills the metadata, related and recommendation caches for a list of titles.
type Warmup struct {
	control

	metadata    Metadata
	parallelism int
}

// NewWarmup returns a warm-up crawler running up to parallelism tasks per pool.
// A non-positive parallelism uses the number of CPUs.
func NewWarmup(metadata Metadata, parallelism int) *Warmup {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	return &Warmup{
		metadata:    metadata,
		parallelism: parallelism,
	}
}

// Run resolves every link in random order. Titles whose metadata resolves also get their
// related set and recommendations fetched on two separate pools. Run returns once all pools drained.
// Notifications are serialized but may arrive from several goroutines.
func (w *Warmup) Run(ctx context.Context, links []anime.InfoLink, obs Observer) Result {
	obs = &syncObserver{obs: orNop(obs)}
	links = lo.Shuffle(slices.Clone(links))

	var primary, related, recs errgroup.Group
	primary.SetLimit(w.parallelism)
	related.SetLimit(w.parallelism)
	recs.SetLimit(w.parallelism)

	var (
		mu    sync.Mutex
		found []*anime.Anime
		done  int
	)

	progress := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		obs.OnProgress(done, len(links))
	}

	for _, link := range links {
		if w.stopped(ctx) {
			break
		}

		primary.Go(func() error {
			defer recoverTask("metadata", link)
			defer progress()

			if w.stopped(ctx) {
				return nil
			}

			a, ok := w.metadata.Anime(ctx, link).Get()
			if !ok {
				return nil
			}

			mu.Lock()
			found = append(found, a)
			mu.Unlock()
			obs.OnFound(a)

			if w.stopped(ctx) {
				return nil
			}

			related.Go(func() error {
				defer recoverTask("related", link)
				if !w.stopped(ctx) {
					w.metadata.Related(ctx, link)
				}
				return nil
			})

			recs.Go(func() error {
				defer recoverTask("recommendations", link)
				if !w.stopped(ctx) {
					w.metadata.Recommendations(ctx, link)
				}
				return nil
			})

			return nil
		})
	}

	_ = primary.Wait()
	_ = related.Wait()
	_ = recs.Wait()

	return finish(obs, found, w.stopped(ctx))
}

// recoverTask keeps one panicking task from taking the whole batch down.
func recoverTask(kind string, link anime.InfoLink) {
	if r := recover(); r != nil {
		log.WithField("link", link.String()).Errorf("%s task panicked: %v", kind, r)
	}
}
