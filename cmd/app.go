package cmd

import (
	"fmt"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/downloader"
	"github.com/anisan-cli/anicat/extractor"
	"github.com/anisan-cli/anicat/internal/cache"
	"github.com/anisan-cli/anicat/lists"
	"github.com/anisan-cli/anicat/log"
	"github.com/samber/lo"
)

// newMetadata wires the default extractors to the configured downloaders.
// The returned func shuts the headless browser down, if one was started.
func newMetadata() (*cache.Metadata, func()) {
	registry := extractor.Default()
	router, headless := downloader.FromConfig(registry.UsesHeadless)

	closer := func() {
		if headless == nil {
			return
		}
		if err := headless.Close(); err != nil {
			log.Warnf("close headless browser: %v", err)
		}
	}

	return cache.NewMetadata(registry, router), closer
}

func loadLists() *lists.Store {
	store := lists.Default()
	handleErr(store.Load())
	return store
}

// parseLinks validates links given on the command line.
func parseLinks(args []string) ([]anime.InfoLink, error) {
	links := lo.Map(args, func(arg string, _ int) anime.InfoLink {
		return anime.NewInfoLink(arg)
	})

	if invalid, ok := lo.Find(links, func(l anime.InfoLink) bool { return !l.Valid() }); ok {
		return nil, fmt.Errorf("invalid link %q", invalid.String())
	}

	return links, nil
}
