package crawler

import (
	"context"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/log"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Tag walks the pages of a tag, genre or season listing and reports titles not yet in any user list.
type Tag struct {
	control

	metadata Metadata
	lists    Lists
}

// NewTag returns a listing crawler. A nil lists excludes nothing.
func NewTag(metadata Metadata, lists Lists) *Tag {
	if lists == nil {
		lists = noLists{}
	}

	return &Tag{
		metadata: metadata,
		lists:    lists,
	}
}

// Run requests pages 1, 2, ... of tagURL until the site reports a missing page or a page
// repeats the titles of the one before it, which is how sites answer out-of-range page numbers.
// Progress reports (titles found, titles seen).
func (t *Tag) Run(ctx context.Context, tagURL string, obs Observer) Result {
	obs = orNop(obs)

	lister, ok := t.metadata.Registry().ListerFor(tagURL).Get()
	if !ok {
		log.WithField("url", tagURL).Warn("no listing support for url")
		return finish(obs, nil, false)
	}

	var (
		found    []*anime.Anime
		seen     = make(map[anime.InfoLink]struct{})
		previous []anime.InfoLink
	)

	for page := 1; ; page++ {
		if t.stopped(ctx) {
			return finish(obs, found, true)
		}

		pageURL := lister.PageURL(tagURL, page)
		content, err := t.metadata.Download(ctx, pageURL)
		if err != nil {
			log.WithFields(logrus.Fields{"url": pageURL, "page": page}).Warnf("listing download failed: %v", err)
			break
		}

		if lister.IsNotFound(content) {
			break
		}

		links := lister.ParseListing(content)
		if page > 1 {
			added, removed := lo.Difference(links, previous)
			if len(added) == 0 && len(removed) == 0 {
				break
			}
		}
		previous = links

		for _, link := range links {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}

			if listed(t.lists, link) {
				continue
			}

			if t.stopped(ctx) {
				return finish(obs, found, true)
			}

			if a, ok := t.metadata.Anime(ctx, link).Get(); ok {
				found = append(found, a)
				obs.OnFound(a)
			}
		}

		obs.OnProgress(len(found), len(seen))
	}

	return finish(obs, found, false)
}
