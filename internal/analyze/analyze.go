// Package analyze produces structural statistics for a document tree in
// a single traversal.
package analyze

import (
	"sort"

	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/samber/lo"
)

// CountEntry is one name/count pair in a ranked view.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counter is an insertion-ordered name counter. Consumers display both a
// flat first-seen list and a frequency ranking, so it exposes both views.
type Counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

func (c *Counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// Get returns the count for a name.
func (c *Counter) Get(name string) int { return c.counts[name] }

// Len returns the number of distinct names.
func (c *Counter) Len() int { return len(c.order) }

// Sum returns the total across all names.
func (c *Counter) Sum() int {
	return lo.Sum(lo.Values(c.counts))
}

// Entries returns name/count pairs in first-seen order.
func (c *Counter) Entries() []CountEntry {
	return lo.Map(c.order, func(name string, _ int) CountEntry {
		return CountEntry{Name: name, Count: c.counts[name]}
	})
}

// Ranked returns name/count pairs sorted by descending count. Ties keep
// first-seen order.
func (c *Counter) Ranked() []CountEntry {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Map returns a plain name→count map.
func (c *Counter) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Stats is the structural summary of one document.
type Stats struct {
	ElementCounts   *Counter
	AttributeCounts *Counter
	DepthCounts     map[int]int
	MaxDepth        int
	TotalElements   int
	TotalAttributes int
}

// Analyze walks the tree once in pre-order with the root at depth 0.
// Only elements are tallied; text, comment and CDATA children still
// advance the depth tracking, so MaxDepth covers every node kind.
func Analyze(doc *xmltree.Document) *Stats {
	s := &Stats{
		ElementCounts:   newCounter(),
		AttributeCounts: newCounter(),
		DepthCounts:     make(map[int]int),
	}
	if doc == nil || doc.Root == nil {
		return s
	}

	doc.Root.Walk(func(n *xmltree.Node, depth int) {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if n.Kind != xmltree.KindElement {
			return
		}
		s.ElementCounts.add(n.Name)
		s.DepthCounts[depth]++
		s.TotalElements++
		for _, a := range n.Attrs {
			s.AttributeCounts.add(a.Name)
			s.TotalAttributes++
		}
	})
	return s
}
