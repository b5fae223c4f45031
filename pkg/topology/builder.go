package topology

import (
	"rpltopo/pkg/models"
	"rpltopo/pkg/rank"
	"rpltopo/pkg/traffic"
)

// Build derives the topology from the aggregated traffic and the final rank table.
//
// Every observed pair contributes both of its nodes. A pair seen more than threshold
// times also contributes one edge, from the lower ranked node to the higher ranked one.
// On equal ranks the edge goes from dst to src; that tie-break is part of the heuristic
// and is kept as is.
func Build(counts *traffic.Count, ranks *rank.Table, threshold int) *Topology {
	t := New()
	counts.Range(func(p models.Pair, count int) bool {
		t.AddNode(p.Src, ranks.Get(p.Src))
		t.AddNode(p.Dst, ranks.Get(p.Dst))

		if count <= threshold {
			return true
		}
		if ranks.Get(p.Src) < ranks.Get(p.Dst) {
			t.AddEdge(p.Src, p.Dst)
		} else {
			t.AddEdge(p.Dst, p.Src)
		}
		return true
	})
	return t
}

// Root selects the DODAG root: the node of minimum rank, first inserted on ties.
func Root(t *Topology) *models.NodeID {
	id, ok := t.MinRank()
	if !ok {
		return nil
	}
	return &id
}
