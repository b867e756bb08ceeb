package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/downloader"
	"github.com/anisan-cli/anicat/extractor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent readers of a missing key", t, func() {
		var calls atomic.Int32
		release := make(chan struct{})
		s := NewStore("test", func(ctx context.Context, key string) (int, error) {
			calls.Add(1)
			<-release
			return 42, nil
		}, func(v int) bool { return v == 0 })

		const readers = 32
		results := make([]int, readers)
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.Get(ctx, "k")
			}(i)
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		Convey("The value should be loaded exactly once and shared", func() {
			So(calls.Load(), ShouldEqual, 1)
			for _, r := range results {
				So(r, ShouldEqual, 42)
			}
			So(s.Len(), ShouldEqual, 1)
		})
	})

	Convey("Given a loader that yields an empty value", t, func() {
		var calls atomic.Int32
		s := NewStore("test", func(ctx context.Context, key string) (string, error) {
			calls.Add(1)
			return "", nil
		}, func(v string) bool { return v == "" })

		Convey("One read should reload exactly once and return the second result", func() {
			So(s.Get(ctx, "k"), ShouldEqual, "")
			So(calls.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given a loader that recovers after an empty value", t, func() {
		var calls atomic.Int32
		s := NewStore("test", func(ctx context.Context, key string) (string, error) {
			if calls.Add(1) == 1 {
				return "", nil
			}
			return "value", nil
		}, func(v string) bool { return v == "" })

		Convey("The repaired value should be cached", func() {
			So(s.Get(ctx, "k"), ShouldEqual, "value")
			So(s.Get(ctx, "k"), ShouldEqual, "value")
			So(calls.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given a loader that fails once", t, func() {
		var calls atomic.Int32
		s := NewStore("test", func(ctx context.Context, key string) (int, error) {
			if calls.Add(1) == 1 {
				return 0, errors.New("boom")
			}
			return 7, nil
		}, func(int) bool { return false })

		Convey("The failure should yield the zero value without poisoning the key", func() {
			So(s.Get(ctx, "k"), ShouldEqual, 0)
			So(s.Len(), ShouldEqual, 0)
			So(s.Get(ctx, "k"), ShouldEqual, 7)
			So(s.Len(), ShouldEqual, 1)
		})
	})

	Convey("Invalidate should drop an entry", t, func() {
		var calls atomic.Int32
		s := NewStore("test", func(ctx context.Context, key string) (int, error) {
			return int(calls.Add(1)), nil
		}, func(int) bool { return false })

		So(s.Get(ctx, "k"), ShouldEqual, 1)
		s.Invalidate("k")
		So(s.Len(), ShouldEqual, 0)
		So(s.Get(ctx, "k"), ShouldEqual, 2)
	})
}

const (
	deathNote = "https://myanimelist.net/anime/1535"
	rewrite   = "https://myanimelist.net/anime/2994"
	infoPage  = `<html><head><meta property="og:title" content="Death Note"></head><body>
<div class="spaceit_pad"><span class="dark_text">Type:</span> TV</div>
<div class="related-entries"><a href="/anime/2994/Death_Note__Rewrite">Rewrite</a></div>
</body></html>`
	recsPage = `<div class="picSurround"><a href="/anime/19/Monster"></a></div><div>Recommended by <strong>4</strong></div>`
)

type fakeSite struct {
	mu        sync.Mutex
	pages     map[string]string
	requested []string
}

func (f *fakeSite) Download(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requested = append(f.requested, url)
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("unreachable")
	}
	return page, nil
}

func (f *fakeSite) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requested)
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()

	Convey("Given a metadata cache over MyAnimeList pages", t, func() {
		site := &fakeSite{pages: map[string]string{
			deathNote:               infoPage,
			deathNote + "/userrecs": recsPage,
		}}
		m := NewMetadata(extractor.Default(), site)

		Convey("Every spelling of a link should share one cached record", func() {
			a := m.Anime(ctx, anime.NewInfoLink("https://myanimelist.net/anime.php?id=1535"))
			b := m.Anime(ctx, anime.NewInfoLink("https://www.myanimelist.net/anime/1535/Death_Note"))

			So(a.IsPresent(), ShouldBeTrue)
			So(a.MustGet().Title, ShouldEqual, "Death Note")
			So(a.MustGet().Link.String(), ShouldEqual, deathNote)
			So(b.MustGet(), ShouldEqual, a.MustGet())
			So(site.count(), ShouldEqual, 1)
			So(m.Len(), ShouldEqual, 1)
		})

		Convey("Related titles should be parsed from the info page", func() {
			related := m.Related(ctx, anime.NewInfoLink(deathNote))
			So(related.Contains(anime.NewInfoLink(rewrite)), ShouldBeTrue)
		})

		Convey("Recommendations should be read from the recommendations page", func() {
			recs := m.Recommendations(ctx, anime.NewInfoLink(deathNote))
			So(recs[anime.NewInfoLink("https://myanimelist.net/anime/19")], ShouldEqual, 4)
			So(site.requested, ShouldContain, deathNote+"/userrecs")
		})

		Convey("Blank links should short-circuit without a download", func() {
			So(m.Anime(ctx, anime.NewInfoLink(" ")).IsAbsent(), ShouldBeTrue)
			So(m.Related(ctx, anime.InfoLink{}).Len(), ShouldEqual, 0)
			So(m.Recommendations(ctx, anime.InfoLink{}).Len(), ShouldEqual, 0)
			So(site.count(), ShouldEqual, 0)
		})

		Convey("Links without an extractor should be absent without a download", func() {
			So(m.Anime(ctx, anime.NewInfoLink("https://example.com/anime/1")).IsAbsent(), ShouldBeTrue)
			So(site.count(), ShouldEqual, 0)
		})

		Convey("A failing download should be absent and retried on the next read", func() {
			missing := anime.NewInfoLink(rewrite)
			So(m.Anime(ctx, missing).IsAbsent(), ShouldBeTrue)
			So(m.Len(), ShouldEqual, 0)

			site.mu.Lock()
			site.pages[rewrite] = `<meta property="og:title" content="Death Note: Rewrite">`
			site.mu.Unlock()

			So(m.Anime(ctx, missing).MustGet().Title, ShouldEqual, "Death Note: Rewrite")
		})
	})

	Convey("Given the download passthrough", t, func() {
		m := NewMetadata(extractor.Default(), downloader.Func(func(ctx context.Context, url string) (string, error) {
			return "raw " + url, nil
		}))

		content, err := m.Download(ctx, "https://myanimelist.net/anime/genre/1")
		So(err, ShouldBeNil)
		So(content, ShouldEqual, "raw https://myanimelist.net/anime/genre/1")
		So(m.Len(), ShouldEqual, 0)
		So(m.Registry(), ShouldNotBeNil)
	})
}
