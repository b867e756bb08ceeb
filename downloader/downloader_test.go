package downloader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anisan-cli/anicat/filesystem"
	"github.com/anisan-cli/anicat/key"
	"github.com/anisan-cli/anicat/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// rateLimited serves 429 for the first n requests and then 200 with body.
func rateLimited(n int32, body string, hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= n {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
}

func noSleep(waits *[]time.Duration) HTTPOption {
	return WithSleep(func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	})
}

func TestHTTPDownload(t *testing.T) {
	Convey("Given the HTTP downloader", t, func() {
		ctx := context.Background()

		Convey("Invalid URLs are refused without a request", func() {
			d := NewHTTP()
			for _, u := range []string{"", "   ", "ftp://example.org/x", "example.org"} {
				body, err := d.Download(ctx, u)
				So(errors.Is(err, ErrInvalidURL), ShouldBeTrue)
				So(body, ShouldBeEmpty)
			}
		})

		Convey("Only the minimal header set is sent", func() {
			var got http.Header
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				_, _ = io.WriteString(w, "ok")
			}))
			defer srv.Close()

			body, err := NewHTTP(WithClient(srv.Client())).Download(ctx, srv.URL)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "ok")
			So(got.Get("User-Agent"), ShouldContainSubstring, "Mozilla/5.0")
			So(got.Get("Accept"), ShouldContainSubstring, "text/html")
			So(got.Get("Cookie"), ShouldBeEmpty)
			So(got.Get("Referer"), ShouldBeEmpty)
		})

		Convey("Non-success statuses return the body without an error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, "404 Not Found")
			}))
			defer srv.Close()

			body, err := NewHTTP(WithClient(srv.Client())).Download(ctx, srv.URL)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "404 Not Found")
		})

		Convey("429 responses are retried after a 4-8 second backoff", func() {
			var hits atomic.Int32
			var waits []time.Duration
			srv := rateLimited(2, "finally", &hits)
			defer srv.Close()

			body, err := NewHTTP(WithClient(srv.Client()), noSleep(&waits)).Download(ctx, srv.URL)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "finally")
			So(hits.Load(), ShouldEqual, 3)
			So(len(waits), ShouldEqual, 2)
			for _, w := range waits {
				So(w, ShouldBeGreaterThanOrEqualTo, 4*time.Second)
				So(w, ShouldBeLessThan, 8*time.Second)
			}
		})

		// Rate-limit retries are unbounded unless a limit is configured.
		Convey("Without a retry limit a persistently rate-limited host keeps being retried", func() {
			var hits atomic.Int32
			var waits []time.Duration
			srv := rateLimited(25, "eventually", &hits)
			defer srv.Close()

			body, err := NewHTTP(WithClient(srv.Client()), noSleep(&waits)).Download(ctx, srv.URL)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "eventually")
			So(len(waits), ShouldEqual, 25)
		})

		Convey("With a retry limit the download gives up", func() {
			var hits atomic.Int32
			var waits []time.Duration
			srv := rateLimited(100, "never", &hits)
			defer srv.Close()

			_, err := NewHTTP(WithClient(srv.Client()), WithRetryLimit(3), noSleep(&waits)).Download(ctx, srv.URL)
			So(errors.Is(err, ErrRetryLimit), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 4)
			So(len(waits), ShouldEqual, 3)
		})

		Convey("A cancelled context interrupts the backoff", func() {
			var hits atomic.Int32
			srv := rateLimited(100, "never", &hits)
			defer srv.Close()

			cctx, cancel := context.WithCancel(ctx)
			d := NewHTTP(WithClient(srv.Client()), WithBackoff(func() time.Duration {
				cancel()
				return time.Hour
			}))

			_, err := d.Download(cctx, srv.URL)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 1)
		})
	})
}

func TestRouter(t *testing.T) {
	Convey("Given a router with both downloaders", t, func() {
		plain := Func(func(context.Context, string) (string, error) { return "plain", nil })
		headless := Func(func(context.Context, string) (string, error) { return "headless", nil })
		usesHeadless := func(url string) bool { return url == "https://www.anisearch.com/anime/1" }

		Convey("URLs needing a browser go to the headless downloader", func() {
			r := NewRouter(plain, headless, usesHeadless)
			body, _ := r.Download(context.Background(), "https://www.anisearch.com/anime/1")
			So(body, ShouldEqual, "headless")

			body, _ = r.Download(context.Background(), "https://myanimelist.net/anime/1")
			So(body, ShouldEqual, "plain")
		})

		Convey("Without a headless downloader everything goes to plain", func() {
			r := NewRouter(plain, nil, usesHeadless)
			body, _ := r.Download(context.Background(), "https://www.anisearch.com/anime/1")
			So(body, ShouldEqual, "plain")
		})
	})
}

func TestHeadless(t *testing.T) {
	Convey("Headless refuses invalid URLs before launching a browser", t, func() {
		h := NewHeadless()
		_, err := h.Download(context.Background(), "javascript:alert(1)")
		So(errors.Is(err, ErrInvalidURL), ShouldBeTrue)
		So(h.Close(), ShouldBeNil)
	})
}

func TestFromConfig(t *testing.T) {
	Convey("Given headless rendering disabled", t, func() {
		viper.Set(key.DownloaderHeadless, false)
		defer viper.Set(key.DownloaderHeadless, true)

		router, headless := FromConfig(func(string) bool { return true })

		Convey("No browser should be prepared", func() {
			So(headless, ShouldBeNil)
			So(router.headless, ShouldBeNil)
		})
	})

	Convey("Given headless rendering enabled", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()
		t.Setenv(where.EnvCachePath, "/anicat/cache")
		viper.Set(key.DownloaderHeadless, true)

		router, headless := FromConfig(func(string) bool { return true })

		Convey("The router should carry a browser that is not launched yet", func() {
			So(headless, ShouldNotBeNil)
			So(router.headless == Downloader(headless), ShouldBeTrue)
			So(headless.Close(), ShouldBeNil)
		})
	})
}
