// Package storage keeps finished runs on disk: a metadata.json per run and
// a snapshots.csv holding the recorded history of every body.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/trajectory"
)

var ErrUnknownBody = errors.New("storage: body not in run")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// BodyRecord describes one body of a stored run.
type BodyRecord struct {
	Name        string  `json:"name"`
	Radius      float64 `json:"radius,omitempty"`
	Length      float64 `json:"length,omitempty"`
	PhaseOffset float64 `json:"phase_offset,omitempty"`
	Snapshots   int     `json:"snapshots"`
}

type RunMetadata struct {
	ID               string             `json:"id"`
	Scenario         string             `json:"scenario"`
	Timestamp        time.Time          `json:"timestamp"`
	SnapshotInterval int                `json:"snapshot_interval"`
	G                float64            `json:"g"`
	StepsTaken       int                `json:"steps_taken"`
	Stopped          bool               `json:"stopped"`
	Vehicle          BodyRecord         `json:"vehicle"`
	Planets          []BodyRecord       `json:"planets"`
	Collisions       []sim.Event        `json:"collisions"`
	Metrics          map[string]float64 `json:"metrics"`
}

func record(b *trajectory.Body) BodyRecord {
	return BodyRecord{
		Name:        b.Name(),
		Radius:      b.Radius(),
		Length:      b.Propulsion().Length(),
		PhaseOffset: b.Config().PhaseOffset,
		Snapshots:   b.Len(),
	}
}

// Save writes the run under a fresh id and returns it. A failed save leaves
// no run directory behind. Metrics that are not finite are not stored.
func (s *Store) Save(scenario string, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	vcfg := result.Vehicle.Config()
	meta := RunMetadata{
		ID:               runID,
		Scenario:         scenario,
		Timestamp:        now,
		SnapshotInterval: vcfg.SnapshotInterval,
		G:                vcfg.G,
		StepsTaken:       result.StepsTaken,
		Stopped:          result.Stopped,
		Vehicle:          record(result.Vehicle),
		Planets:          make([]BodyRecord, 0, len(result.Planets)),
		Collisions:       result.Collisions,
		Metrics:          make(map[string]float64, len(result.Metrics)),
	}
	for _, p := range result.Planets {
		meta.Planets = append(meta.Planets, record(p))
	}
	for name, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[name] = v
		}
	}

	bodies := append([]*trajectory.Body{result.Vehicle}, result.Planets...)
	// metadata goes last: List only picks up directories that have it
	err := writeSnapshots(filepath.Join(runDir, "snapshots.csv"), bodies)
	if err == nil {
		err = writeMetadata(filepath.Join(runDir, "metadata.json"), meta)
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save %s: %w", runID, err)
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSnapshots(path string, bodies []*trajectory.Body) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, b := range bodies {
		interval := b.Config().SnapshotInterval
		for i, snap := range b.History() {
			if err := w.Write(row(b.Name(), i*interval, snap)); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadHistories reads every body's snapshots, keyed by body name.
func (s *Store) LoadHistories(runID string) (map[string][]trajectory.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readSnapshots(file)
}

// LoadHistory reads the snapshots of one body.
func (s *Store) LoadHistory(runID, body string) ([]trajectory.Snapshot, error) {
	all, err := s.LoadHistories(runID)
	if err != nil {
		return nil, err
	}
	history, ok := all[body]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}
	return history, nil
}

// Restore rebuilds the bodies of a stored run from their histories. The
// vehicle comes back unpowered: it can be queried but not flown further.
func (s *Store) Restore(runID string) (*trajectory.Body, []*trajectory.Body, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	histories, err := s.LoadHistories(runID)
	if err != nil {
		return nil, nil, err
	}

	restore := func(rec BodyRecord) (*trajectory.Body, error) {
		cfg := trajectory.Config{
			G:                meta.G,
			SnapshotInterval: meta.SnapshotInterval,
			PhaseOffset:      rec.PhaseOffset,
		}
		return trajectory.NewFromHistory(rec.Name, histories[rec.Name], rec.Radius, nil, cfg)
	}

	vehicle, err := restore(meta.Vehicle)
	if err != nil {
		return nil, nil, err
	}
	planets := make([]*trajectory.Body, 0, len(meta.Planets))
	for _, rec := range meta.Planets {
		p, err := restore(rec)
		if err != nil {
			return nil, nil, err
		}
		planets = append(planets, p)
	}
	return vehicle, planets, nil
}

var header = []string{
	"body", "second", "mass", "x", "y", "vx", "vy", "fx", "fy",
	"angle", "angular_velocity", "torque",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func row(body string, second int, s trajectory.Snapshot) []string {
	return []string{
		body,
		strconv.Itoa(second),
		formatFloat(s.Mass),
		formatFloat(s.Position.X), formatFloat(s.Position.Y),
		formatFloat(s.Velocity.X), formatFloat(s.Velocity.Y),
		formatFloat(s.Force.X), formatFloat(s.Force.Y),
		formatFloat(s.Angle),
		formatFloat(s.AngularVelocity),
		formatFloat(s.Torque),
	}
}

func readSnapshots(r io.Reader) (map[string][]trajectory.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]trajectory.Snapshot)
	for i, rec := range records {
		if i == 0 {
			continue
		}
		vals := make([]float64, len(rec)-2)
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, %s: %w", i+1, header[j+2], err)
			}
			vals[j] = v
		}
		out[rec[0]] = append(out[rec[0]], trajectory.Snapshot{
			Mass:            vals[0],
			Position:        r2.Vec{X: vals[1], Y: vals[2]},
			Velocity:        r2.Vec{X: vals[3], Y: vals[4]},
			Force:           r2.Vec{X: vals[5], Y: vals[6]},
			Angle:           vals[7],
			AngularVelocity: vals[8],
			Torque:          vals[9],
		})
	}
	return out, nil
}
