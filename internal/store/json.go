package store

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
)

// GetJSON reads key and decodes it into out. A missing key returns false.
// A corrupt (non-JSON) entry is logged and treated as absent rather than
// propagated as a fault.
func GetJSON(ctx context.Context, kv KV, key string, out any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn("Discarding corrupt store entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// SetJSON serializes value and writes it under key.
func SetJSON(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, raw)
}
