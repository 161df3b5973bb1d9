package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the self-contained JSON form of a run.
type ExportData struct {
	ID         string             `json:"id"`
	BoxLength  float64            `json:"box_length"`
	Mass       float64            `json:"mass"`
	Hbar       float64            `json:"hbar"`
	GridPoints int                `json:"grid_points"`
	NMax       int                `json:"nmax"`
	TMax       float64            `json:"t_max"`
	Frames     int                `json:"frames"`
	Times      []float64          `json:"times"`
	Densities  [][]float64        `json:"densities"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, densities [][]float64, times []float64) error {
	data := ExportData{
		ID:         meta.ID,
		BoxLength:  meta.BoxLength,
		Mass:       meta.Mass,
		Hbar:       meta.Hbar,
		GridPoints: meta.GridPoints,
		NMax:       meta.NMax,
		TMax:       meta.TMax,
		Frames:     len(times),
		Times:      times,
		Densities:  densities,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, densities [][]float64, times []float64) error {
	return ExportJSON(os.Stdout, meta, densities, times)
}
