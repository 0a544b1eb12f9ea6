package prefs

import "sort"

// counter tracks frequencies while remembering first-seen order, so that
// equal counts resolve stably by insertion order.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: map[K]int{}}
}

func (c *counter[K]) inc(key K) {
	c.add(key, 1)
}

func (c *counter[K]) add(key K, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// top returns up to n keys by descending count, first-seen order among ties.
func (c *counter[K]) top(n int) []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func (c *counter[K]) sum() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// snapshot copies the table for verbatim exposure in raw_signals.
func (c *counter[K]) snapshot() map[K]int {
	out := make(map[K]int, len(c.counts))
	for k, n := range c.counts {
		out[k] = n
	}
	return out
}
