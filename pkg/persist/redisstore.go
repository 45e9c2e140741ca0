package persist

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

// RedisStore is the optional Store backend for deployments that already
// run Redis for other fabric state. Both keys are written inside one
// TxPipeline so a reader never observes one half of a snapshot.
type RedisStore struct {
	client  *redis.Client
	mapKey  string
	topoKey string
	runKey  string
}

// NewRedisStore returns a RedisStore writing under the given key prefix
// (e.g. "fabricreason:<env>").
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:  client,
		mapKey:  keyPrefix + ":normalization_map",
		topoKey: keyPrefix + ":topology_snapshot",
		runKey:  keyPrefix + ":run_id",
	}
}

// Save writes both keys atomically via TxPipeline, mirroring the
// device-config-db write pattern used elsewhere in the fabric's Redis
// clients: MULTI/EXEC so a reader never sees a partial update.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	mapData, err := json.Marshal(snap.NormalizationMap)
	if err != nil {
		return ferrors.NewIOError("persist.RedisStore.Save: marshal map", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.mapKey, mapData, 0)
	pipe.Set(ctx, s.topoKey, snap.TopologyJSON, 0)
	pipe.Set(ctx, s.runKey, snap.RunID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return ferrors.NewIOError("persist.RedisStore.Save: exec", err)
	}
	return nil
}

// Load reads both keys. found is false (with a nil error) if no snapshot
// has ever been saved under this prefix.
func (s *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	mapData, err := s.client.Get(ctx, s.mapKey).Bytes()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, ferrors.NewIOError("persist.RedisStore.Load: get map", err)
	}

	var normMap map[string]string
	if err := json.Unmarshal(mapData, &normMap); err != nil {
		return Snapshot{}, false, ferrors.NewIOError("persist.RedisStore.Load: unmarshal map", err)
	}

	topoData, err := s.client.Get(ctx, s.topoKey).Bytes()
	if err != nil && err != redis.Nil {
		return Snapshot{}, false, ferrors.NewIOError("persist.RedisStore.Load: get topology", err)
	}

	runID, err := s.client.Get(ctx, s.runKey).Result()
	if err != nil && err != redis.Nil {
		return Snapshot{}, false, ferrors.NewIOError("persist.RedisStore.Load: get run id", err)
	}

	return Snapshot{NormalizationMap: normMap, TopologyJSON: topoData, RunID: runID}, true, nil
}
