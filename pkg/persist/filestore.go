package persist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

// FileStore is the default Store: a single JSON document written with a
// write-temp-then-rename sequence so a crash mid-write never leaves a
// torn file behind.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path (e.g.
// "~/.fabricreason/snapshot.json").
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type fileSnapshot struct {
	NormalizationMap map[string]string `json:"normalization_map"`
	TopologyJSON     json.RawMessage   `json:"topology_snapshot"`
	RunID            string            `json:"run_id"`
}

// Save writes snap to a temp file in the same directory as path, then
// renames it into place. Rename is atomic on the same filesystem, so
// concurrent readers see either the old file or the new one, never a
// partial write.
func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ferrors.NewIOError("persist.FileStore.Save: mkdir", err)
	}

	data, err := json.MarshalIndent(fileSnapshot{
		NormalizationMap: snap.NormalizationMap,
		TopologyJSON:     snap.TopologyJSON,
		RunID:            snap.RunID,
	}, "", "  ")
	if err != nil {
		return ferrors.NewIOError("persist.FileStore.Save: marshal", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return ferrors.NewIOError("persist.FileStore.Save: create temp", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ferrors.NewIOError("persist.FileStore.Save: write temp", err)
	}
	if err := tmp.Close(); err != nil {
		return ferrors.NewIOError("persist.FileStore.Save: close temp", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return ferrors.NewIOError("persist.FileStore.Save: rename", err)
	}
	return nil
}

// Load reads the snapshot file. found is false (with a nil error) when no
// snapshot has ever been saved.
func (s *FileStore) Load(_ context.Context) (Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, ferrors.NewIOError("persist.FileStore.Load: read", err)
	}

	var fs fileSnapshot
	if err := json.Unmarshal(data, &fs); err != nil {
		return Snapshot{}, false, ferrors.NewIOError("persist.FileStore.Load: unmarshal", err)
	}
	return Snapshot{
		NormalizationMap: fs.NormalizationMap,
		TopologyJSON:     fs.TopologyJSON,
		RunID:            fs.RunID,
	}, true, nil
}
