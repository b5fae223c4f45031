package export

import (
	"fmt"
	"io"
	"strconv"

	"rpltopo/pkg/models"

	"github.com/olekukonko/tablewriter"
)

// Text writes the plain text topology report.
func Text(w io.Writer, res *models.Result) error {
	root := "none"
	if res.Root != nil {
		root = string(*res.Root)
	}
	if _, err := fmt.Fprintf(w, "=== RPL Topology Report ===\n\n"+
		"Total packets: %d\nRPL packets: %d\nNodes detected: %d\nRoot: %s\n\nNode hierarchy:\n",
		res.TotalPackets, res.RPLPackets, len(res.Nodes), root); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"NODE", "RANK", "CHILDREN"})
	children := childCount(res)
	for _, n := range Hierarchy(res) {
		table.Append([]string{string(n.ID), strconv.Itoa(int(n.Rank)), strconv.Itoa(children[n.ID])})
	}
	table.Render()

	if _, err := fmt.Fprint(w, "\nRouting relations:\n"); err != nil {
		return err
	}
	for _, e := range res.Edges {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}

	if len(res.Diagnostics) > 0 {
		if _, err := fmt.Fprint(w, "\nCapture errors:\n"); err != nil {
			return err
		}
		for _, d := range res.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s\n", d.Error()); err != nil {
				return err
			}
		}
	}
	return nil
}

func childCount(res *models.Result) map[models.NodeID]int {
	counts := make(map[models.NodeID]int, len(res.Nodes))
	for _, e := range res.Edges {
		counts[e.Parent]++
	}
	return counts
}
