package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata    `json:"run"`
	Frames []*FrameRecord `json:"frames"`
}

// ExportJSON writes the run's metadata and frames to path.
func (s *Store) ExportJSON(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.WriteJSON(runID, file)
}

func (s *Store) WriteJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames})
}
