package codec

import (
	"fmt"
	"sync"
)

// Type describes a registered codec vendor: a Validate/New factory pair.
// Validate reports whether the credentials carry everything the vendor
// needs; New constructs an instance. A Type whose Validate rejects a config
// is never instantiated for it.
type Type struct {
	Vendor   string
	Validate func(Credentials) bool
	New      func(Config) (Codec, error)
}

var registry struct {
	mu    sync.RWMutex
	types []Type
}

// Register adds a codec type to the registry. Vendor packages call this
// from init; registering the same vendor twice panics.
func Register(t Type) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, existing := range registry.types {
		if existing.Vendor == t.Vendor {
			panic(fmt.Sprintf("codec: vendor %q registered twice", t.Vendor))
		}
	}
	registry.types = append(registry.types, t)
}

// Lookup returns the registered type for a vendor name.
func Lookup(vendor string) (Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, t := range registry.types {
		if t.Vendor == vendor {
			return t, true
		}
	}
	return Type{}, false
}

// Vendors lists the registered vendor names in registration order.
func Vendors() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, len(registry.types))
	for i, t := range registry.types {
		names[i] = t.Vendor
	}
	return names
}

// New constructs a codec of the named vendor after validating the
// configuration. Missing credential fields reject the config before
// instantiation.
func New(vendor string, cfg Config) (Codec, error) {
	t, ok := Lookup(vendor)
	if !ok {
		return nil, fmt.Errorf("unsupported codec vendor: %s", vendor)
	}
	if !t.Validate(cfg.Credentials) {
		return nil, fmt.Errorf("codec %s rejected configuration: missing credentials", vendor)
	}
	return t.New(cfg)
}
