package storage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/heroscene/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []metrics.Sample {
	return []metrics.Sample{
		{Frame: 1, Elapsed: 0, CameraX: 0.005, TargetX: 0.1, OrbitDrift: 1e-12, Spin: 0.01},
		{Frame: 2, Elapsed: 16 * time.Millisecond, CameraX: 0.00975, TargetX: 0.1, Spin: 0.02},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{
		Preset:  "corner",
		Seed:    42,
		FPS:     60,
		Frames:  2,
		Metrics: map[string]float64{"camera_lag": 0.09},
	}, sampleTrace())
	require.NoError(t, err)
	assert.Contains(t, runID, "corner_")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, int64(42), meta.Seed)
	assert.InDelta(t, 0.09, meta.Metrics["camera_lag"], 1e-12)
	assert.False(t, meta.Timestamp.IsZero())

	frames, err := st.LoadFrames(runID)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 2, frames[1].Frame)
	assert.InDelta(t, 16.0, frames[1].ElapsedMs, 1e-9)
	assert.InDelta(t, 0.00975, frames[1].CameraX, 1e-12)
}

func TestStoreSaveEmptyTrace(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{ID: "empty"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "empty", runID)

	frames, err := st.LoadFrames(runID)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := st.Save(RunMetadata{ID: "a", Timestamp: older}, sampleTrace())
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{ID: "b", Timestamp: older.Add(time.Hour)}, sampleTrace())
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestWriteJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	runID, err := st.Save(RunMetadata{Preset: "still"}, sampleTrace())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.WriteJSON(runID, &buf))

	var out ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "still", out.Run.Preset)
	assert.Len(t, out.Frames, 2)

	path := filepath.Join(t.TempDir(), "run.json")
	assert.NoError(t, st.ExportJSON(runID, path))
	assert.Error(t, st.WriteJSON("nope", &buf))
}
