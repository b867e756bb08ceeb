// Package lists persists the user's anime, watch and filter lists in a JSON file.
package lists

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/anisan-cli/anicat/anime"
	"github.com/anisan-cli/anicat/filesystem"
	"github.com/anisan-cli/anicat/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// Kind names one of the user's lists.
type Kind string

const (
	// Anime holds the titles the user has seen.
	Anime Kind = "anime"
	// Watch holds titles the user plans to see.
	Watch Kind = "watch"
	// Filter holds titles the user never wants suggested.
	Filter Kind = "filter"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{Anime, Watch, Filter}

// ParseKind maps a name such as "watch" or "watchlist" to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "list")
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown list %q, expected one of %s", s, strings.Join(lo.Map(Kinds, func(k Kind, _ int) string {
		return string(k)
	}), ", "))
}

// Entry is one title in a list.
type Entry struct {
	Title string         `json:"title"`
	Link  anime.InfoLink `json:"link"`
}

type document map[Kind][]Entry

// Store reads and writes the lists file. Lookups are served from memory after Load.
type Store struct {
	mu     sync.RWMutex
	cacher *gache.Cache[document]
	lists  document
	index  map[Kind]map[anime.InfoLink]struct{}
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{
		cacher: gache.New[document](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Default returns the store at the standard lists location.
func Default() *Store {
	return New(where.Lists())
}

// Load reads the lists file. A missing file yields empty lists.
func (s *Store) Load() error {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return fmt.Errorf("read lists: %w", err)
	}
	if expired || cached == nil {
		cached = make(document)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(cached)
	return nil
}

// set must be called with s.mu held.
func (s *Store) set(doc document) {
	s.lists = doc
	s.index = make(map[Kind]map[anime.InfoLink]struct{}, len(Kinds))
	for _, k := range Kinds {
		idx := make(map[anime.InfoLink]struct{}, len(doc[k]))
		for _, e := range doc[k] {
			idx[e.Link] = struct{}{}
		}
		s.index[k] = idx
	}
}

// save must be called with s.mu held.
func (s *Store) save() error {
	if err := s.cacher.Set(s.lists); err != nil {
		return fmt.Errorf("write lists: %w", err)
	}
	return nil
}

// Add appends entries to a list, skipping blank links and links already on it, and returns how many were added.
func (s *Store) Add(kind Kind, entries ...Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lists == nil {
		s.set(make(document))
	}

	var added int
	for _, e := range entries {
		if !e.Link.Present() {
			continue
		}
		if _, ok := s.index[kind][e.Link]; ok {
			continue
		}

		s.lists[kind] = append(s.lists[kind], e)
		s.index[kind][e.Link] = struct{}{}
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.save()
}

// Remove deletes link from a list and reports whether it was there.
func (s *Store) Remove(kind Kind, link anime.InfoLink) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[kind][link]; !ok {
		return false, nil
	}

	s.lists[kind] = lo.Reject(s.lists[kind], func(e Entry, _ int) bool {
		return e.Link == link
	})
	delete(s.index[kind], link)
	return true, s.save()
}

// Entries returns a copy of a list in insertion order.
func (s *Store) Entries(kind Kind) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.lists[kind])
}

// Links returns the links of a list in insertion order.
func (s *Store) Links(kind Kind) []anime.InfoLink {
	return lo.Map(s.Entries(kind), func(e Entry, _ int) anime.InfoLink {
		return e.Link
	})
}

// Contains reports whether link is on a list.
func (s *Store) Contains(kind Kind, link anime.InfoLink) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[kind][link]
	return ok
}

func (s *Store) AnimeListContains(link anime.InfoLink) bool  { return s.Contains(Anime, link) }
func (s *Store) WatchListContains(link anime.InfoLink) bool  { return s.Contains(Watch, link) }
func (s *Store) FilterListContains(link anime.InfoLink) bool { return s.Contains(Filter, link) }

// Match is a search hit.
type Match struct {
	Kind  Kind  `json:"kind"`
	Entry Entry `json:"entry"`
}

// Find returns the entries of all lists whose title fuzzily matches query, closest first.
func (s *Store) Find(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	var matches []Match
	for _, k := range Kinds {
		for _, e := range s.lists[k] {
			if fuzzy.MatchNormalizedFold(query, e.Title) {
				matches = append(matches, Match{Kind: k, Entry: e})
			}
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(matches, func(a, b Match) int {
		return levenshtein.Distance(query, strings.ToLower(a.Entry.Title)) -
			levenshtein.Distance(query, strings.ToLower(b.Entry.Title))
	})

	return matches
}
