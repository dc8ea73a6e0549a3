package gsettings

import (
	"fmt"
	"strings"
)

// Memory is an in-memory Store. Tests reconcile against it instead of a real
// settings daemon; schemas are declared up front with their keys and default
// value text. Relocatable instances ("schema:/path/") share the declaration
// of their schema part.
type Memory struct {
	// Unavailable simulates a host without working backend tooling.
	Unavailable bool
	// SetHook can veto a write; the returned error is wrapped in a
	// *WriteError. Lets tests model backend rejections.
	SetHook func(schema, key, value string) error
	// GetHook can fail a read; the key is then reported as not found. Lets
	// tests model unreadable entries.
	GetHook func(schema, key string) error

	declared map[string]map[string]string
	values   map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		declared: make(map[string]map[string]string),
		values:   make(map[string]string),
	}
}

// DeclareSchema registers a schema and its keys with raw default value text.
func (m *Memory) DeclareSchema(schema string, defaults map[string]string) {
	keys := make(map[string]string, len(defaults))
	for key, value := range defaults {
		keys[key] = value
	}
	m.declared[schema] = keys
}

func schemaBase(schema string) string {
	if i := strings.IndexByte(schema, ':'); i >= 0 {
		return schema[:i]
	}
	return schema
}

// Available reports the simulated backend state.
func (m *Memory) Available() bool { return !m.Unavailable }

// SchemaExists reports whether the schema (or its relocatable base) was
// declared.
func (m *Memory) SchemaExists(schema string) bool {
	if m.Unavailable {
		return false
	}
	_, ok := m.declared[schemaBase(schema)]
	return ok
}

// KeyExists reports whether the schema declares the key.
func (m *Memory) KeyExists(schema, key string) bool {
	if m.Unavailable {
		return false
	}
	defaults, ok := m.declared[schemaBase(schema)]
	if !ok {
		return false
	}
	_, ok = defaults[key]
	return ok
}

// Get returns the stored value text, falling back to the declared default.
func (m *Memory) Get(schema, key string) (string, error) {
	defaults, ok := m.declared[schemaBase(schema)]
	if m.Unavailable || !ok {
		return "", &NotFoundError{Schema: schema, Key: key}
	}
	if m.GetHook != nil {
		if err := m.GetHook(schema, key); err != nil {
			return "", &NotFoundError{Schema: schema, Key: key}
		}
	}
	if value, ok := m.values[schema+"|"+key]; ok {
		return value, nil
	}
	if value, ok := defaults[key]; ok {
		return value, nil
	}
	return "", &NotFoundError{Schema: schema, Key: key}
}

// Set stores a value for a declared key.
func (m *Memory) Set(schema, key, value string) error {
	if !m.KeyExists(schema, key) {
		return &WriteError{Schema: schema, Key: key, Value: value, Err: fmt.Errorf("no such key")}
	}
	if m.SetHook != nil {
		if err := m.SetHook(schema, key, value); err != nil {
			return &WriteError{Schema: schema, Key: key, Value: value, Err: err}
		}
	}
	m.values[schema+"|"+key] = value
	return nil
}

// Reset drops the stored value so reads fall back to the default.
func (m *Memory) Reset(schema, key string) error {
	if !m.KeyExists(schema, key) {
		return &WriteError{Schema: schema, Key: key, Err: fmt.Errorf("no such key")}
	}
	delete(m.values, schema+"|"+key)
	return nil
}

// WasWritten reports whether the key currently holds an explicitly written
// value (as opposed to its default).
func (m *Memory) WasWritten(schema, key string) bool {
	_, ok := m.values[schema+"|"+key]
	return ok
}
