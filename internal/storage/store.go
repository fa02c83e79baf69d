package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/san-kum/heroscene/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Damping   float64            `json:"damping"`
	PointerX  float64            `json:"pointer_x"`
	PointerY  float64            `json:"pointer_y"`
	Sweep     float64            `json:"sweep"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame      int     `csv:"frame"`
	ElapsedMs  float64 `csv:"elapsed_ms"`
	CameraX    float64 `csv:"camera_x"`
	CameraY    float64 `csv:"camera_y"`
	TargetX    float64 `csv:"target_x"`
	TargetY    float64 `csv:"target_y"`
	OrbitDrift float64 `csv:"orbit_drift"`
	Spin       float64 `csv:"spin"`
}

func NewRunID(preset string) string {
	if preset == "" {
		preset = "scene"
	}
	return fmt.Sprintf("%s_%s", preset, uuid.NewString()[:8])
}

// Save writes meta and the trace under a new run directory and returns the
// run ID. An empty meta.ID is filled in.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Preset)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	records := make([]*FrameRecord, 0, len(samples))
	for _, sm := range samples {
		records = append(records, &FrameRecord{
			Frame:      sm.Frame,
			ElapsedMs:  float64(sm.Elapsed) / float64(time.Millisecond),
			CameraX:    sm.CameraX,
			CameraY:    sm.CameraY,
			TargetX:    sm.TargetX,
			TargetY:    sm.TargetY,
			OrbitDrift: sm.OrbitDrift,
			Spin:       sm.Spin,
		})
	}
	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]*FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := make([]*FrameRecord, 0)
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return records, nil
		}
		return nil, err
	}
	return records, nil
}
