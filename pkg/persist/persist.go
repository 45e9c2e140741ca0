// Package persist implements the two named keys of persisted state (§6):
// the Name Normalizer's raw-to-canonical name map, and the most recent
// TopologyGraph snapshot. Both keys are written together so a reader never
// observes a topology snapshot whose normalization map predates it.
package persist

import "context"

// Snapshot bundles the two persisted artifacts written as one unit.
type Snapshot struct {
	NormalizationMap map[string]string // raw name -> canonical name (Normalizer.Map)
	TopologyJSON     []byte            // caller-serialized TopologyGraph
	RunID            string
}

// Store is the persistence backend contract. Implementations must write
// both fields of a Snapshot atomically: a reader must never see a
// TopologyJSON written by run N paired with a NormalizationMap from run
// N-1 or N+1.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
}
