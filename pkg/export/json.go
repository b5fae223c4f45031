package export

import (
	"encoding/json"
	"io"

	"rpltopo/pkg/models"
)

type jsonResult struct {
	TotalPackets   int               `json:"total_packets"`
	RPLPackets     int               `json:"rpl_packets"`
	Nodes          []models.NodeRank `json:"nodes"`
	Edges          []models.Edge     `json:"edges"`
	Root           *models.NodeID    `json:"root"`
	Endpoints      int               `json:"endpoints"`
	Success        bool              `json:"success"`
	FilesProcessed int               `json:"files_processed"`
	Diagnostics    []jsonDiagnostic  `json:"diagnostics"`
}

type jsonDiagnostic struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// JSON writes the result as a single indented JSON document. Empty collections are
// written as empty arrays and a missing root as null.
func JSON(w io.Writer, res *models.Result) error {
	out := jsonResult{
		TotalPackets:   res.TotalPackets,
		RPLPackets:     res.RPLPackets,
		Nodes:          append([]models.NodeRank{}, res.Nodes...),
		Edges:          append([]models.Edge{}, res.Edges...),
		Root:           res.Root,
		Endpoints:      res.Endpoints,
		Success:        res.Success,
		FilesProcessed: res.FilesProcessed,
		Diagnostics:    []jsonDiagnostic{},
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{File: d.File, Error: d.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
