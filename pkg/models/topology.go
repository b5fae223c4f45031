package models

import "fmt"

// NodeID identifies a mesh node. It is the trailing segment of the node's address literal.
type NodeID string

// Rank is a coarse, heuristic distance from the DODAG root; lower is closer.
type Rank int

const (
	// RankRootChild is given to nodes that talk directly to the root.
	RankRootChild Rank = 512
	// RankIntermediate is given to destinations of non-root traffic.
	RankIntermediate Rank = 768
	// RankDefault is the rank of every node nothing else is known about.
	RankDefault Rank = 1024
)

// Ranks is the full vocabulary of rank values, lowest first.
var Ranks = []Rank{RankRootChild, RankIntermediate, RankDefault}

// Pair is an ordered (source, destination) couple of nodes seen in one RPL packet.
type Pair struct {
	Src NodeID
	Dst NodeID
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.Src, p.Dst)
}

// Edge is an inferred parent to child relation.
type Edge struct {
	Parent NodeID `json:"parent"`
	Child  NodeID `json:"child"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.Parent, e.Child)
}

// NodeRank is a node together with its final rank.
type NodeRank struct {
	ID   NodeID `json:"id"`
	Rank Rank   `json:"rank"`
}
