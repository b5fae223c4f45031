// Package traffic counts how often each ordered pair of nodes exchanged RPL control traffic.
package traffic

import "rpltopo/pkg/models"

// Count maps ordered pairs to the number of packets observed for them. Pairs are kept
// in the order they were first observed.
type Count struct {
	order  []models.Pair
	counts map[models.Pair]int
}

func NewCount() *Count {
	return &Count{counts: make(map[models.Pair]int)}
}

// Observe records one more packet from src to dst. (src, dst) and (dst, src) are
// different pairs.
func (c *Count) Observe(src, dst models.NodeID) {
	p := models.Pair{Src: src, Dst: dst}
	if _, ok := c.counts[p]; !ok {
		c.order = append(c.order, p)
	}
	c.counts[p]++
}

// Get returns the count of p, zero if it was never observed.
func (c *Count) Get(p models.Pair) int {
	return c.counts[p]
}

// Pairs returns the observed pairs in first observation order.
func (c *Count) Pairs() []models.Pair {
	return append([]models.Pair(nil), c.order...)
}

// Len returns the number of distinct pairs.
func (c *Count) Len() int {
	return len(c.order)
}

// Range calls fn for every pair in first observation order until fn returns false.
func (c *Count) Range(fn func(p models.Pair, count int) bool) {
	for _, p := range c.order {
		if !fn(p, c.counts[p]) {
			return
		}
	}
}
