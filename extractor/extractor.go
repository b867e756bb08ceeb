// Package extractor turns downloaded pages of metadata sites into the anime data model.
//
// Each supported site is one Extractor. A Registry holds them in a fixed order and
// dispatches a URL to the first one that claims responsibility for it.
package extractor

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/anicat/anime"
)

// ErrNoExtractor is returned when no registered extractor is responsible for a URL.
var ErrNoExtractor = errors.New("no extractor responsible")

// Extractor parses one site.
// Parse methods return empty results, not errors, for well-formed pages that lack the requested data.
type Extractor interface {
	// Name returns a short human readable site name.
	Name() string

	// IsResponsible reports whether the URL belongs to this site. Blank or unparseable URLs are never claimed.
	IsResponsible(url string) bool

	// Normalize returns the canonical form of an anime URL. URLs of any other shape are returned unchanged.
	Normalize(url string) string

	// UsesHeadless reports whether pages must be rendered by a browser.
	UsesHeadless() bool

	// RecommendationsURL returns the page listing user recommendations for a canonical link.
	RecommendationsURL(link anime.InfoLink) string

	ParseMetadata(link anime.InfoLink, content string) (*anime.Anime, error)
	ParseRelated(link anime.InfoLink, content string) (anime.RelatedSet, error)
	ParseRecommendations(link anime.InfoLink, content string) (anime.Recommendations, error)
}

// Lister is implemented by extractors able to walk paginated tag, genre or season listings.
type Lister interface {
	IsResponsible(url string) bool

	// PageURL returns the URL of the given 1-based page of the listing at tagURL.
	PageURL(tagURL string, page int) string

	// IsNotFound reports whether content is the site's "no such page" response.
	IsNotFound(content string) bool

	// ParseListing returns the canonical links found on a listing page, in page order, without duplicates.
	ParseListing(content string) []anime.InfoLink
}

// parseHTTP parses raw and reports whether it is an absolute http(s) URL.
func parseHTTP(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}

	return u, true
}

// hostIn reports whether raw is an http(s) URL whose host, ignoring "www.", is one of hosts.
func hostIn(raw string, hosts ...string) bool {
	u, ok := parseHTTP(raw)
	if !ok {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, h := range hosts {
		if host == h {
			return true
		}
	}
	return false
}

// canonicalID extracts the numeric id with pattern and formats the canonical URL, or returns raw unchanged.
func canonicalID(pattern *regexp.Regexp, raw, format string) string {
	m := pattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}

	for _, group := range m[1:] {
		if group != "" {
			return strings.Replace(format, "{id}", group, 1)
		}
	}
	return raw
}

// resolve makes href absolute against base.
func resolve(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}

	u, err := b.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return u.String()
}

// metaContent returns the trimmed content attribute of the first <meta property=...> match.
func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(v)
}

// uniqueLinks keeps the first occurrence of every link.
func uniqueLinks(links []anime.InfoLink) []anime.InfoLink {
	seen := make(map[anime.InfoLink]struct{}, len(links))
	out := make([]anime.InfoLink, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
