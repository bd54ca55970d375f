package persist

import "fmt"

// Value is a string persisted under one key. The initial value comes from
// the store, or the fallback when the key is missing or unreadable; every
// Set writes through.
type Value struct {
	store   Store
	key     string
	current string
}

// NewValue reads key from store. A read error is returned alongside a value
// that already holds the fallback, so callers may log and carry on.
func NewValue(store Store, key, fallback string) (*Value, error) {
	v := &Value{store: store, key: key, current: fallback}
	if store == nil {
		return v, fmt.Errorf("persist %q: store is nil", key)
	}
	stored, ok, err := store.Get(key)
	if err != nil {
		return v, fmt.Errorf("persist %q: %w", key, err)
	}
	if ok && stored != "" {
		v.current = stored
	}
	return v, nil
}

// Key returns the store key.
func (v *Value) Key() string {
	return v.key
}

// Get returns the current value.
func (v *Value) Get() string {
	return v.current
}

// Set assigns and persists value. The in-memory value changes even when the
// write fails.
func (v *Value) Set(value string) error {
	v.current = value
	if v.store == nil {
		return fmt.Errorf("persist %q: store is nil", v.key)
	}
	if err := v.store.Set(v.key, value); err != nil {
		return fmt.Errorf("persist %q: %w", v.key, err)
	}
	return nil
}
