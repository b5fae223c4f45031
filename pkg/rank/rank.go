// Package rank estimates a coarse RPL rank for every node from the order in which RPL
// control traffic is observed.
//
// The estimate is a destructive fold: every pair overwrites what earlier pairs decided,
// so pairs must be observed in capture order and the result cannot be computed from an
// unordered set of pairs.
package rank

import "rpltopo/pkg/models"

// Table maps nodes to their estimated rank. Unset nodes read as models.RankDefault.
type Table struct {
	ranks map[models.NodeID]models.Rank
}

func NewTable() *Table {
	return &Table{ranks: make(map[models.NodeID]models.Rank)}
}

// Get returns the rank of id, models.RankDefault when none was ever set.
func (t *Table) Get(id models.NodeID) models.Rank {
	if r, ok := t.ranks[id]; ok {
		return r
	}
	return models.RankDefault
}

// Has reports whether a rank was explicitly set for id.
func (t *Table) Has(id models.NodeID) bool {
	_, ok := t.ranks[id]
	return ok
}

func (t *Table) Len() int {
	return len(t.ranks)
}

func (t *Table) set(id models.NodeID, r models.Rank) {
	t.ranks[id] = r
}

// Estimator updates a Table once per observed pair.
type Estimator struct {
	root  models.NodeID
	table *Table
}

// NewEstimator returns an estimator that assumes root is the DODAG root.
func NewEstimator(root models.NodeID) *Estimator {
	return &Estimator{
		root:  root,
		table: NewTable(),
	}
}

// Observe applies the first matching rule:
//  1. traffic from the root makes dst a child of the root;
//  2. traffic to the root makes src a child of the root;
//  3. otherwise src is capped at the default rank and dst at the intermediate rank.
func (e *Estimator) Observe(src, dst models.NodeID) {
	switch {
	case src == e.root:
		e.table.set(dst, models.RankRootChild)
	case dst == e.root:
		e.table.set(src, models.RankRootChild)
	default:
		e.table.set(src, min(e.table.Get(src), models.RankDefault))
		e.table.set(dst, min(e.table.Get(dst), models.RankIntermediate))
	}
}

func (e *Estimator) Table() *Table {
	return e.table
}
