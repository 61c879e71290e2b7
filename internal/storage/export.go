package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/driftbox/internal/sim"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Ticks   []uint64           `json:"ticks"`
	Kinetic []float64          `json:"kinetic"`
	Contact []int              `json:"contacts"`
	Walls   []int              `json:"wall_hits"`
	Metrics map[string]float64 `json:"metrics"`
}

func newExport(meta RunMetadata, series []sim.Point, metrics map[string]float64) ExportData {
	data := ExportData{
		Run:     meta,
		Ticks:   make([]uint64, len(series)),
		Kinetic: make([]float64, len(series)),
		Contact: make([]int, len(series)),
		Walls:   make([]int, len(series)),
		Metrics: metrics,
	}
	for i, p := range series {
		data.Ticks[i] = p.Tick
		data.Kinetic[i] = p.Kinetic
		data.Contact[i] = p.Contacts
		data.Walls[i] = p.WallHits
	}
	return data
}

// ExportJSON writes a run as columnar JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExport(meta, result.Series, result.Metrics))
}

// ExportFile writes ExportJSON output to path.
func ExportFile(path string, meta RunMetadata, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, result)
}
