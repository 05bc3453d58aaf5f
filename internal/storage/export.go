package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/orbsim/internal/trajectory"
)

type ExportData struct {
	Scenario         string                `json:"scenario"`
	Body             string                `json:"body"`
	SnapshotInterval int                   `json:"snapshot_interval"`
	StepsTaken       int                   `json:"steps_taken"`
	Metrics          map[string]float64    `json:"metrics"`
	Snapshots        []trajectory.Snapshot `json:"snapshots"`
}

// ExportJSON writes the vehicle history of a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, history []trajectory.Snapshot) error {
	data := ExportData{
		Scenario:         meta.Scenario,
		Body:             meta.Vehicle.Name,
		SnapshotInterval: meta.SnapshotInterval,
		StepsTaken:       meta.StepsTaken,
		Metrics:          meta.Metrics,
		Snapshots:        history,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes one body's history in the snapshots.csv layout.
func ExportCSV(w io.Writer, body string, interval int, history []trajectory.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, s := range history {
		if err := cw.Write(row(body, i*interval, s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
