// Package topology holds the inferred DODAG: nodes carrying their final rank and directed
// parent to child edges.
package topology

import (
	"rpltopo/pkg/models"

	mapset "github.com/deckarep/golang-set/v2"
)

// Topology is a directed graph. Nodes and edges are kept in insertion order, which is
// also what breaks ties between equally ranked root candidates.
type Topology struct {
	order   []models.NodeID
	nodes   mapset.Set[models.NodeID]
	ranks   map[models.NodeID]models.Rank
	edges   []models.Edge
	out, in map[models.NodeID][]models.NodeID
}

func New() *Topology {
	return &Topology{
		nodes: mapset.NewThreadUnsafeSet[models.NodeID](),
		ranks: make(map[models.NodeID]models.Rank),
		out:   make(map[models.NodeID][]models.NodeID),
		in:    make(map[models.NodeID][]models.NodeID),
	}
}

// AddNode adds id with the given rank. Adding an existing node updates its rank but
// keeps its original position.
func (t *Topology) AddNode(id models.NodeID, rank models.Rank) {
	if t.nodes.Add(id) {
		t.order = append(t.order, id)
	}
	t.ranks[id] = rank
}

// AddEdge adds parent -> child. Both nodes must already exist. Identical edges are not
// merged. Self-loops are dropped and reported as not added.
func (t *Topology) AddEdge(parent, child models.NodeID) bool {
	if parent == child || !t.nodes.Contains(parent) || !t.nodes.Contains(child) {
		return false
	}
	t.edges = append(t.edges, models.Edge{Parent: parent, Child: child})
	t.out[parent] = append(t.out[parent], child)
	t.in[child] = append(t.in[child], parent)
	return true
}

func (t *Topology) HasNode(id models.NodeID) bool {
	return t.nodes.Contains(id)
}

// Rank returns the rank of id and whether id is a node of the topology.
func (t *Topology) Rank(id models.NodeID) (models.Rank, bool) {
	r, ok := t.ranks[id]
	return r, ok
}

// Nodes returns the nodes with their rank, in insertion order.
func (t *Topology) Nodes() []models.NodeRank {
	res := make([]models.NodeRank, len(t.order))
	for i, id := range t.order {
		res[i] = models.NodeRank{ID: id, Rank: t.ranks[id]}
	}
	return res
}

// Edges returns the edges in insertion order.
func (t *Topology) Edges() []models.Edge {
	return append([]models.Edge(nil), t.edges...)
}

// Neighbors returns the children of id, following edge insertion order.
func (t *Topology) Neighbors(id models.NodeID) []models.NodeID {
	return append([]models.NodeID(nil), t.out[id]...)
}

// Parents returns the nodes with an edge towards id.
func (t *Topology) Parents(id models.NodeID) []models.NodeID {
	return append([]models.NodeID(nil), t.in[id]...)
}

func (t *Topology) Len() int {
	return len(t.order)
}

// MinRank returns the node of lowest rank. Among equally ranked nodes the first inserted
// one wins. ok is false when the topology has no nodes.
func (t *Topology) MinRank() (id models.NodeID, ok bool) {
	for _, n := range t.order {
		if !ok || t.ranks[n] < t.ranks[id] {
			id, ok = n, true
		}
	}
	return id, ok
}
