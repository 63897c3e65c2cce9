package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/charmbracelet/log"
)

// Accessor provides typed reads and whole-collection read-modify-write
// mutations over one seeded entity key.
type Accessor[T any] struct {
	key   string
	kv    store.KV
	sync  syncer.Syncer
	getID func(T) int64
	setID func(*T, int64)

	// onWrite is applied to every created or updated entity before it is
	// persisted, for derived-field invariants.
	onWrite func(*T)
	now     func() time.Time

	load    func(ctx context.Context) ([]T, error)
	persist func(ctx context.Context, collection []T) error
}

// Option customizes an Accessor.
type Option[T any] func(*Accessor[T])

// WithWriteHook applies hook to every entity before it is persisted.
func WithWriteHook[T any](hook func(*T)) Option[T] {
	return func(a *Accessor[T]) {
		a.onWrite = hook
	}
}

// WithClock overrides the clock used for id generation.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(a *Accessor[T]) {
		a.now = now
	}
}

// WithCodec overrides how the collection is read from and written to the
// store, for collections persisted inside an envelope.
func WithCodec[T any](load func(ctx context.Context) ([]T, error), persist func(ctx context.Context, collection []T) error) Option[T] {
	return func(a *Accessor[T]) {
		a.load = load
		a.persist = persist
	}
}

// NewAccessor creates an accessor for the collection stored under key.
func NewAccessor[T any](key string, kv store.KV, sync syncer.Syncer, getID func(T) int64, setID func(*T, int64), opts ...Option[T]) *Accessor[T] {
	a := &Accessor[T]{
		key:   key,
		kv:    kv,
		sync:  sync,
		getID: getID,
		setID: setID,
		now:   time.Now,
	}
	a.load = func(ctx context.Context) ([]T, error) {
		var collection []T
		if _, err := store.GetJSON(ctx, kv, key, &collection); err != nil {
			return nil, err
		}
		return collection, nil
	}
	a.persist = func(ctx context.Context, collection []T) error {
		return store.SetJSON(ctx, kv, key, collection)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key this accessor reads and writes.
func (a *Accessor[T]) Key() string {
	return a.key
}

// All returns the full collection, seeding it on first access. A missing
// or corrupt entry degrades to an empty collection.
func (a *Accessor[T]) All(ctx context.Context) ([]T, error) {
	if err := a.sync.EnsureLoaded(ctx, a.key); err != nil {
		return nil, err
	}
	collection, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		collection = []T{}
	}
	return collection, nil
}

// ByID returns the entity with the given id, or ErrNotFound.
func (a *Accessor[T]) ByID(ctx context.Context, id int64) (T, error) {
	var zero T
	collection, err := a.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, entity := range collection {
		if a.getID(entity) == id {
			return entity, nil
		}
	}
	return zero, ErrNotFound
}

// Filter returns the entities matching pred.
func (a *Accessor[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	collection, err := a.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := []T{}
	for _, entity := range collection {
		if pred(entity) {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

// Create assigns a generated id, appends the entity and persists the
// collection.
func (a *Accessor[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	collection, err := a.All(ctx)
	if err != nil {
		return zero, err
	}

	a.setID(&entity, a.nextID(collection))
	if a.onWrite != nil {
		a.onWrite(&entity)
	}

	collection = append(collection, entity)
	if err := a.persist(ctx, collection); err != nil {
		return zero, err
	}
	log.Debug("Created entity", "key", a.key, "id", a.getID(entity))
	return entity, nil
}

// Update shallow-merges patch onto the entity with the given id: fields
// present in patch take the new values, fields absent from it are kept.
// A missing id returns ErrNotFound and the collection is left unchanged.
func (a *Accessor[T]) Update(ctx context.Context, id int64, patch map[string]any) (T, error) {
	var zero T
	collection, err := a.All(ctx)
	if err != nil {
		return zero, err
	}

	for i, entity := range collection {
		if a.getID(entity) != id {
			continue
		}
		merged, err := shallowMerge(entity, patch)
		if err != nil {
			return zero, fmt.Errorf("failed to merge patch for id %d: %w", id, err)
		}
		// The id is not patchable.
		a.setID(&merged, id)
		if a.onWrite != nil {
			a.onWrite(&merged)
		}
		collection[i] = merged
		if err := a.persist(ctx, collection); err != nil {
			return zero, err
		}
		log.Debug("Updated entity", "key", a.key, "id", id)
		return merged, nil
	}
	return zero, ErrNotFound
}

// Remove filters the id out of the collection and reports whether the
// collection shrank. Removing an absent id is a no-op.
func (a *Accessor[T]) Remove(ctx context.Context, id int64) (bool, error) {
	collection, err := a.All(ctx)
	if err != nil {
		return false, err
	}

	kept := collection[:0:0]
	for _, entity := range collection {
		if a.getID(entity) != id {
			kept = append(kept, entity)
		}
	}
	if len(kept) == len(collection) {
		return false, nil
	}
	if err := a.persist(ctx, kept); err != nil {
		return false, err
	}
	log.Debug("Removed entity", "key", a.key, "id", id)
	return true, nil
}

// nextID generates an id from the current time in milliseconds. The
// source's same-millisecond collision is guarded against by bumping until
// the id is unused in the collection.
func (a *Accessor[T]) nextID(collection []T) int64 {
	used := make(map[int64]struct{}, len(collection))
	for _, entity := range collection {
		used[a.getID(entity)] = struct{}{}
	}
	id := a.now().UnixMilli()
	for {
		if _, taken := used[id]; !taken {
			return id
		}
		id++
	}
}

// shallowMerge overlays patch keys onto the JSON form of current, leaving
// every other field as it was.
func shallowMerge[T any](current T, patch map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(current)
	if err != nil {
		return out, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ParseID coerces an id that arrived as a string, e.g. from a URL query
// parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

// EqualFold is case-insensitive equality, used for category/type/sport
// fields.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ContainsFold is case-insensitive substring containment, used for
// free-text search fields.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AnyFold reports whether want is in list, case-insensitively.
func AnyFold(list []string, want string) bool {
	for _, item := range list {
		if strings.EqualFold(item, want) {
			return true
		}
	}
	return false
}
