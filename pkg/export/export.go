// Package export renders an analysis result for people and other tools. Nothing in here
// feeds back into the analysis.
package export

import (
	"io"
	"sort"

	"rpltopo/pkg/models"
)

// Exporter writes a result in one format.
type Exporter interface {
	Export(w io.Writer, res *models.Result) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(w io.Writer, res *models.Result) error

func (f ExporterFunc) Export(w io.Writer, res *models.Result) error {
	return f(w, res)
}

// Hierarchy returns the nodes sorted by rank, keeping first-seen order among equal ranks.
func Hierarchy(res *models.Result) []models.NodeRank {
	nodes := append([]models.NodeRank(nil), res.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Rank < nodes[j].Rank
	})
	return nodes
}

// Color is the fill colour of a node: the root is gold, nodes ranked below
// models.RankIntermediate light green and everything else light blue.
func Color(res *models.Result, n models.NodeRank) string {
	switch {
	case res.IsRoot(n.ID):
		return "gold"
	case n.Rank < models.RankIntermediate:
		return "lightgreen"
	default:
		return "lightblue"
	}
}
