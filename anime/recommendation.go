package anime

import (
	"sort"
)

// Recommendation pairs a recommended title with the number of users recommending it.
type Recommendation struct {
	Link   InfoLink `json:"link"`
	Amount int      `json:"amount"`
}

// Recommendations maps recommended titles to their counts.
type Recommendations map[InfoLink]int

// Add sums r.Amount into the existing count for r.Link. Blank links are ignored.
func (r Recommendations) Add(rec Recommendation) {
	if !rec.Link.Present() {
		return
	}
	r[rec.Link] += rec.Amount
}

// Len returns the number of distinct recommended titles.
func (r Recommendations) Len() int {
	return len(r)
}

// Total returns the sum of all counts.
func (r Recommendations) Total() int {
	var total int
	for _, amount := range r {
		total += amount
	}
	return total
}

// Sorted returns the entries by descending amount, ties by URL.
func (r Recommendations) Sorted() []Recommendation {
	out := make([]Recommendation, 0, len(r))
	for link, amount := range r {
		out = append(out, Recommendation{Link: link, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Link.url < out[j].Link.url
	})
	return out
}
