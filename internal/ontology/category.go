package ontology

import (
	"fmt"
	"sort"
	"strings"
)

// Category is one ontology category: an open, continuously expanding set of
// string values with occurrence counts. Values keeps first-seen order, which
// breaks frequency ties in reports.
type Category struct {
	Name      string
	Values    []string
	Frequency map[string]int
}

func NewCategory(name string) *Category {
	return &Category{
		Name:      name,
		Frequency: make(map[string]int),
	}
}

// Add records one occurrence of value. Empty values are ignored; a first
// occurrence inserts the value with frequency 1.
func (c *Category) Add(value string) {
	if value == "" {
		return
	}
	if c.Frequency == nil {
		c.Frequency = make(map[string]int)
	}
	if _, seen := c.Frequency[value]; !seen {
		c.Values = append(c.Values, value)
	}
	c.Frequency[value]++
}

// Count returns the occurrence count for value.
func (c *Category) Count(value string) int {
	return c.Frequency[value]
}

// TopValues returns up to n values sorted by descending frequency,
// ties broken by first-seen order.
func (c *Category) TopValues(n int) []string {
	vals := make([]string, len(c.Values))
	copy(vals, c.Values)
	sort.SliceStable(vals, func(i, j int) bool {
		return c.Frequency[vals[i]] > c.Frequency[vals[j]]
	})
	if len(vals) > n {
		vals = vals[:n]
	}
	return vals
}

// Text renders the top 20 values with counts, one per line.
func (c *Category) Text() string {
	if len(c.Values) == 0 {
		return ""
	}
	var lines []string
	for _, v := range c.TopValues(20) {
		lines = append(lines, fmt.Sprintf("  %s (%dx)", v, c.Frequency[v]))
	}
	return strings.Join(lines, "\n")
}
