// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package census

import "sort"

// Count is one key of a Counter with its frequency.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Counter is a frequency table that remembers the order in which keys were
// first seen. The zero value is ready to use.
type Counter struct {
	index  map[string]int
	counts []Count
}

// Inc adds one occurrence of key.
func (c *Counter) Inc(key string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.counts)
		c.index[key] = i
		c.counts = append(c.counts, Count{Key: key})
	}
	c.counts[i].Count++
}

// Count returns the number of occurrences of key.
func (c *Counter) Count(key string) int {
	if i, ok := c.index[key]; ok {
		return c.counts[i].Count
	}
	return 0
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.counts)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, kc := range c.counts {
		total += kc.Count
	}
	return total
}

// Keys returns the distinct keys in first-seen order.
func (c *Counter) Keys() []string {
	keys := make([]string, len(c.counts))
	for i, kc := range c.counts {
		keys[i] = kc.Key
	}
	return keys
}

// MostCommon returns all keys ordered by descending count. Keys with equal
// counts keep their first-seen order.
func (c *Counter) MostCommon() []Count {
	out := append([]Count(nil), c.counts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
