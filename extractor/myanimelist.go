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

const malCanonical = "https://myanimelist.net/anime/{id}"

var (
	malAnimePattern   = regexp.MustCompile(`^(?i:https?://(?:www\.)?myanimelist\.net)/(?:anime/(\d+)(?:[/?#].*)?|anime\.php\?(?:[^#]*&)?id=(\d+)(?:[&#].*)?)$`)
	malListingPattern = regexp.MustCompile(`(?i:https?://(?:www\.)?myanimelist\.net)?/anime/(\d+)[/"?]`)
	malThumbPattern   = regexp.MustCompile(`^(.+/images/anime/\d+/\d+)(\.[a-z]+)$`)
)

// MyAnimeList extracts data from myanimelist.net.
type MyAnimeList struct{}

// NewMyAnimeList returns the myanimelist.net extractor.
func NewMyAnimeList() *MyAnimeList {
	return &MyAnimeList{}
}

func (*MyAnimeList) Name() string { return "MyAnimeList" }

func (*MyAnimeList) UsesHeadless() bool { return false }

func (*MyAnimeList) IsResponsible(url string) bool {
	return hostIn(url, "myanimelist.net")
}

// Normalize maps anime.php?id=N, /anime/N/Slug/... and host or scheme variants to https://myanimelist.net/anime/N.
func (*MyAnimeList) Normalize(url string) string {
	return canonicalID(malAnimePattern, url, malCanonical)
}

func (*MyAnimeList) RecommendationsURL(link anime.InfoLink) string {
	return link.String() + "/userrecs"
}

func (m *MyAnimeList) ParseMetadata(link anime.InfoLink, content string) (*anime.Anime, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	title := metaContent(doc, "og:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1.title-name").First().Text())
	}
	if title == "" {
		return nil, nil
	}

	typ, episodes := anime.Unknown, 0
	doc.Find("span.dark_text").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.Parent().Text()), label))

		switch label {
		case "Type:":
			typ = anime.ParseType(value)
		case "Episodes:":
			if n, err := strconv.Atoi(value); err == nil {
				episodes = n
			}
		}
	})

	picture := metaContent(doc, "og:image")
	return anime.New(title, typ, episodes, link, picture, malThumbnail(picture)), nil
}

// malThumbnail derives the small cover variant, which carries a "t" before the extension.
func malThumbnail(picture string) string {
	if !malThumbPattern.MatchString(picture) {
		return picture
	}
	return malThumbPattern.ReplaceAllString(picture, "${1}t${2}")
}

func (m *MyAnimeList) ParseRelated(link anime.InfoLink, content string) (anime.RelatedSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	related := anime.NewRelatedSet()
	doc.Find(".related-entries a[href], table.anime_detail_related_anime a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if l, ok := m.animeLink(link, href); ok {
			related.Add(l)
		}
	})

	return related, nil
}

// animeLink resolves href against link and returns its canonical form if it points to another anime.
func (m *MyAnimeList) animeLink(link anime.InfoLink, href string) (anime.InfoLink, bool) {
	abs := resolve(link.String(), href)
	if !malAnimePattern.MatchString(abs) {
		return anime.InfoLink{}, false
	}

	l := anime.NewInfoLink(m.Normalize(abs))
	return l, l != link
}

// ParseRecommendations scans the /userrecs page. Every recommendation block starts with a
// picSurround cover linking to the recommended anime and states how many users recommended it.
// The scan is done by hand since the markup around the count varies in spacing and tags.
func (m *MyAnimeList) ParseRecommendations(link anime.InfoLink, content string) (anime.Recommendations, error) {
	recs := anime.Recommendations{}

	blocks := strings.Split(content, `class="picSurround"`)
	for _, block := range blocks[1:] {
		href, ok := between(block, `href="`, `"`)
		if !ok {
			continue
		}

		target, ok := m.animeLink(link, href)
		if !ok {
			continue
		}

		recs.Add(anime.Recommendation{Link: target, Amount: recommendedBy(block)})
	}

	return recs, nil
}

// recommendedBy reads the number following "Recommended by", skipping whitespace and tags.
// A block without a count is a single recommendation.
func recommendedBy(block string) int {
	const marker = "Recommended by"

	i := strings.Index(block, marker)
	if i < 0 {
		return 1
	}

	rest := block[i+len(marker):]
	for len(rest) > 0 {
		switch {
		case rest[0] == ' ' || rest[0] == '\n' || rest[0] == '\t' || rest[0] == '\r':
			rest = rest[1:]
		case rest[0] == '<':
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return 1
			}
			rest = rest[end+1:]
		default:
			digits := 0
			for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
				digits++
			}
			n, err := strconv.Atoi(rest[:digits])
			if err != nil || n <= 0 {
				return 1
			}
			return n
		}
	}

	return 1
}

// between returns the text between the first open marker and the following close marker.
func between(s, open, close string) (string, bool) {
	i := strings.Index(s, open)
	if i < 0 {
		return "", false
	}
	s = s[i+len(open):]

	j := strings.Index(s, close)
	if j < 0 {
		return "", false
	}
	return s[:j], true
}

// PageURL sets the page query parameter of a genre, studio or season listing.
func (*MyAnimeList) PageURL(tagURL string, page int) string {
	u, err := url.Parse(strings.TrimSpace(tagURL))
	if err != nil {
		return tagURL
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func (*MyAnimeList) IsNotFound(content string) bool {
	return strings.Contains(content, "404 Not Found") || strings.Contains(content, "No titles that match")
}

func (*MyAnimeList) ParseListing(content string) []anime.InfoLink {
	matches := malListingPattern.FindAllStringSubmatch(content, -1)

	links := make([]anime.InfoLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, anime.NewInfoLink(strings.Replace(malCanonical, "{id}", m[1], 1)))
	}
	return uniqueLinks(links)
}
