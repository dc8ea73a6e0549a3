// Package gsettings adapts the host settings database (GSettings) behind a
// small store interface so shortcut reconciliation can run against the real
// backend or an in-memory one.
package gsettings

import (
	"errors"
	"fmt"
)

// Store is the capability handed to shortcut reconciliation. Schemas may be
// relocatable ("schema:/path/") wherever a schema argument is accepted by Get,
// Set and Reset; existence checks take plain schema names.
type Store interface {
	// Available reports whether the backend tooling works at all.
	Available() bool
	// SchemaExists reports whether the schema is registered on the host.
	SchemaExists(schema string) bool
	// KeyExists reports whether the schema declares the key.
	KeyExists(schema, key string) bool
	// Get returns the raw stored value text. A missing schema or key is a
	// *NotFoundError.
	Get(schema, key string) (string, error)
	// Set writes a value. Backend rejections surface as *WriteError.
	Set(schema, key, value string) error
	// Reset restores the key to its system default.
	Reset(schema, key string) error
}

// ErrUnavailable marks every condition where the settings backend cannot be
// used at all (tooling absent, broken session bus). Callers treat it as a
// soft condition.
var ErrUnavailable = errors.New("settings backend unavailable")

// NotFoundError reports a read of a schema or key the backend does not have.
type NotFoundError struct {
	Schema string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gsettings: %s %s not found", e.Schema, e.Key)
}

// SchemaMissingError reports an expected schema that is absent on this host,
// e.g. on a non-GNOME desktop. Soft, per schema checked.
type SchemaMissingError struct {
	Schema string
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("gsettings: schema %s not installed", e.Schema)
}

// WriteError reports a write the backend rejected. Fatal to the operation
// that attempted it.
type WriteError struct {
	Schema string
	Key    string
	Value  string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("gsettings: write %s %s: %v", e.Schema, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
