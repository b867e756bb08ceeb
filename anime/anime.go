package anime

import (
	"strings"
)

// Type is the release format of an anime.
type Type string

const (
	TV      Type = "TV"
	OVA     Type = "OVA"
	Movie   Type = "Movie"
	Special Type = "Special"
	ONA     Type = "ONA"
	Music   Type = "Music"
	Unknown Type = "Unknown"
)

// Types lists every known type in display order.
var Types = []Type{TV, OVA, Movie, Special, ONA, Music, Unknown}

// ParseType maps site text such as "TV", "tv-series" or "Web" to a Type.
func ParseType(s string) Type {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return Unknown
	case strings.HasPrefix(s, "special"), strings.HasPrefix(s, "tv-special"), strings.HasPrefix(s, "tv special"):
		return Special
	case strings.HasPrefix(s, "tv"):
		return TV
	case strings.HasPrefix(s, "ova"), strings.HasPrefix(s, "oad"):
		return OVA
	case strings.HasPrefix(s, "movie"), strings.HasPrefix(s, "film"):
		return Movie
	case strings.HasPrefix(s, "ona"), strings.HasPrefix(s, "web"):
		return ONA
	case strings.HasPrefix(s, "music"):
		return Music
	default:
		return Unknown
	}
}

// Anime is the metadata record extracted from an info page. It is never mutated once cached.
type Anime struct {
	Title     string   `json:"title" jsonschema:"description=Display title as the site shows it."`
	Type      Type     `json:"type" jsonschema:"description=Broadcast type such as TV or Movie."`
	Episodes  int      `json:"episodes" jsonschema:"description=Episode count. 0 when unknown."`
	Link      InfoLink `json:"link" jsonschema:"description=Canonical info page URL. Identifies the anime."`
	Picture   string   `json:"picture" jsonschema:"description=Full size cover image URL."`
	Thumbnail string   `json:"thumbnail" jsonschema:"description=Small cover image URL."`
}

// New builds an Anime, clamping a negative episode count to zero.
func New(title string, typ Type, episodes int, link InfoLink, picture, thumbnail string) *Anime {
	if episodes < 0 {
		episodes = 0
	}
	if typ == "" {
		typ = Unknown
	}

	return &Anime{
		Title:     strings.TrimSpace(title),
		Type:      typ,
		Episodes:  episodes,
		Link:      link,
		Picture:   picture,
		Thumbnail: thumbnail,
	}
}

func (a *Anime) String() string {
	return a.Title
}
