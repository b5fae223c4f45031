package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"rpltopo/pkg/models"
)

// DOT writes the topology as a Graphviz digraph. Nodes of the same rank share a level,
// the root level on top.
func DOT(w io.Writer, res *models.Result) error {
	bw := bufio.NewWriter(w)
	title := "RPL topology"
	if res.Root != nil {
		title = fmt.Sprintf("RPL topology (root: %s)", *res.Root)
	}
	fmt.Fprintf(bw, "digraph rpl {\n\tlabel=%s;\n\tlabelloc=t;\n", strconv.Quote(title))
	fmt.Fprint(bw, "\tnode [shape=circle, style=filled];\n")

	for _, level := range models.Ranks {
		var ids []models.NodeRank
		for _, n := range res.Nodes {
			if n.Rank == level {
				ids = append(ids, n)
			}
		}
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\tsubgraph rank_%d {\n\t\trank=same;\n", level)
		for _, n := range ids {
			fmt.Fprintf(bw, "\t\t%s [label=%s, fillcolor=%s];\n",
				strconv.Quote(string(n.ID)),
				strconv.Quote(fmt.Sprintf("%s\nRank %d", n.ID, n.Rank)),
				Color(res, n))
		}
		fmt.Fprint(bw, "\t}\n")
	}

	for _, e := range res.Edges {
		fmt.Fprintf(bw, "\t%s -> %s;\n", strconv.Quote(string(e.Parent)), strconv.Quote(string(e.Child)))
	}
	fmt.Fprint(bw, "}\n")
	return bw.Flush()
}
