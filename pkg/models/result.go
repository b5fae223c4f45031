package models

// FileError is a diagnostic recorded for a capture file whose processing was cut short.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result is everything an analysis run hands over to its consumers.
type Result struct {
	TotalPackets int
	RPLPackets   int
	// Nodes are listed in the order they were first seen.
	Nodes []NodeRank
	Edges []Edge
	// Root is nil when no node was discovered.
	Root *NodeID
	// Endpoints is the number of distinct addresses seen in RPL packets. It exceeds
	// len(Nodes) when several addresses share a node identifier.
	Endpoints      int
	Success        bool
	FilesProcessed int
	Diagnostics    []FileError
}

// NodeRanks returns the node to rank mapping of the result.
func (r *Result) NodeRanks() map[NodeID]Rank {
	res := make(map[NodeID]Rank, len(r.Nodes))
	for _, n := range r.Nodes {
		res[n.ID] = n.Rank
	}
	return res
}

// IsRoot reports whether id is the selected root.
func (r *Result) IsRoot(id NodeID) bool {
	return r.Root != nil && *r.Root == id
}
