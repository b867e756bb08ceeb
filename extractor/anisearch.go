package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/anicat/anime"
)

const (
	aniSearchBase      = "https://www.anisearch.com/"
	aniSearchCanonical = "https://www.anisearch.com/anime/{id}"
)

var (
	aniSearchAnimePattern   = regexp.MustCompile(`^(?i:https?://(?:www\.)?anisearch\.(?:com|de))/anime/(\d+)(?:[,/?#].*)?$`)
	aniSearchListingPattern = regexp.MustCompile(`anime/(\d+),`)
	aniSearchPagePattern    = regexp.MustCompile(`/page-\d+$`)
	aniSearchLeadingDigits  = regexp.MustCompile(`^\d+`)
)

// AniSearch extracts data from anisearch.com. The site sits behind bot protection, so pages are rendered headless.
type AniSearch struct{}

// NewAniSearch returns the anisearch.com extractor.
func NewAniSearch() *AniSearch {
	return &AniSearch{}
}

func (*AniSearch) Name() string { return "aniSearch" }

func (*AniSearch) UsesHeadless() bool { return true }

func (*AniSearch) IsResponsible(url string) bool {
	return hostIn(url, "anisearch.com", "anisearch.de")
}

// Normalize maps /anime/N,slug and host or scheme variants to https://www.anisearch.com/anime/N.
func (*AniSearch) Normalize(url string) string {
	return canonicalID(aniSearchAnimePattern, url, aniSearchCanonical)
}

func (*AniSearch) RecommendationsURL(link anime.InfoLink) string {
	return link.String() + "/recommendations"
}

func (a *AniSearch) ParseMetadata(link anime.InfoLink, content string) (*anime.Anime, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	title := strings.TrimSpace(doc.Find("h1#htitle span[itemprop=name]").First().Text())
	if title == "" {
		title = metaContent(doc, "og:title")
	}
	if title == "" {
		return nil, nil
	}

	typ, episodes := a.typeAndEpisodes(doc.Find("ul.xlist .type").First().Text())
	picture := metaContent(doc, "og:image")
	thumbnail := strings.Replace(picture, "/cover/full/", "/cover/", 1)

	return anime.New(title, typ, episodes, link, picture, thumbnail), nil
}

// typeAndEpisodes parses text like "Type: TV-Series, 37 (~24 min)".
func (*AniSearch) typeAndEpisodes(text string) (anime.Type, int) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "Type:"))
	if text == "" {
		return anime.Unknown, 0
	}

	typePart, rest, _ := strings.Cut(text, ",")
	episodes, _ := strconv.Atoi(aniSearchLeadingDigits.FindString(strings.TrimSpace(rest)))
	return anime.ParseType(typePart), episodes
}

func (a *AniSearch) ParseRelated(link anime.InfoLink, content string) (anime.RelatedSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	related := anime.NewRelatedSet()
	doc.Find("#relations a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if l, ok := a.animeLink(link, href); ok {
			related.Add(l)
		}
	})

	return related, nil
}

// animeLink resolves a site-relative href and returns its canonical form if it points to another anime.
func (a *AniSearch) animeLink(link anime.InfoLink, href string) (anime.InfoLink, bool) {
	abs := resolve(aniSearchBase, href)
	if !aniSearchAnimePattern.MatchString(abs) {
		return anime.InfoLink{}, false
	}

	l := anime.NewInfoLink(a.Normalize(abs))
	return l, l != link
}

// ParseRecommendations reads the covers of the /recommendations page, each carrying its vote count in data-count.
func (a *AniSearch) ParseRecommendations(link anime.InfoLink, content string) (anime.Recommendations, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	recs := anime.Recommendations{}
	doc.Find("li[data-count]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}

		target, ok := a.animeLink(link, href)
		if !ok {
			return
		}

		count, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("data-count", "")))
		if err != nil || count <= 0 {
			count = 1
		}
		recs.Add(anime.Recommendation{Link: target, Amount: count})
	})

	return recs, nil
}

// PageURL replaces or appends the /page-N path suffix of a listing.
func (*AniSearch) PageURL(tagURL string, page int) string {
	u, err := url.Parse(strings.TrimSpace(tagURL))
	if err != nil {
		return tagURL
	}

	path := aniSearchPagePattern.ReplaceAllString(strings.TrimSuffix(u.Path, "/"), "")
	u.Path = path + "/page-" + strconv.Itoa(page)
	return u.String()
}

func (*AniSearch) IsNotFound(content string) bool {
	return strings.Contains(content, "Page not found") || strings.Contains(content, "Seite nicht gefunden")
}

func (*AniSearch) ParseListing(content string) []anime.InfoLink {
	matches := aniSearchListingPattern.FindAllStringSubmatch(content, -1)

	links := make([]anime.InfoLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, anime.NewInfoLink(strings.Replace(aniSearchCanonical, "{id}", m[1], 1)))
	}
	return uniqueLinks(links)
}
