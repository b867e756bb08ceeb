package anime

import (
	"sort"
)

// RelatedSet is the unordered set of titles related to one source title.
type RelatedSet map[InfoLink]struct{}

// NewRelatedSet builds a set from links, skipping blank ones.
func NewRelatedSet(links ...InfoLink) RelatedSet {
	s := make(RelatedSet, len(links))
	for _, l := range links {
		s.Add(l)
	}
	return s
}

// Add inserts link unless it is blank.
func (s RelatedSet) Add(link InfoLink) {
	if link.Present() {
		s[link] = struct{}{}
	}
}

// Contains reports whether link is in the set.
func (s RelatedSet) Contains(link InfoLink) bool {
	_, ok := s[link]
	return ok
}

// Len returns the number of links in the set.
func (s RelatedSet) Len() int {
	return len(s)
}

// Links returns the members sorted by URL.
func (s RelatedSet) Links() []InfoLink {
	links := make([]InfoLink, 0, len(s))
	for l := range s {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].url < links[j].url
	})
	return links
}
