package hotkey

import (
	"fmt"

	"github.com/rafa/screenux-screenshot/pkg/gsettings"
)

// Holder identifies what currently claims a key combination: another custom
// slot (SlotPath set) or a desktop built-in key (Schema and Key set).
type Holder struct {
	SlotPath string `json:"slot_path,omitempty" yaml:"slot_path,omitempty"`
	Schema   string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Native reports whether the holder is a desktop built-in key.
func (h Holder) Native() bool {
	return h.SlotPath == ""
}

func (h Holder) String() string {
	if h.Native() {
		return fmt.Sprintf("%s %s", h.Schema, h.Key)
	}
	return fmt.Sprintf("custom slot %s", h.SlotPath)
}

// TakenShortcuts returns every key combination currently claimed by other
// custom slots or the desktop's built-in screenshot keys, keyed by canonical
// accelerator. excludePath names the application's own slot so that a
// re-registration never collides with itself. Unreadable or unparseable
// bindings are skipped; an unavailable backend or missing media-keys schema
// yields an empty map.
func TakenShortcuts(store gsettings.Store, excludePath string) map[string][]Holder {
	taken := make(map[string][]Holder)
	if !store.Available() || !store.SchemaExists(MediaKeysSchema) {
		return taken
	}

	scanner := Scanner{Store: store}
	for _, path := range scanner.ListSlotPaths() {
		if path == excludePath {
			continue
		}
		raw, err := store.Get(SlotSchema(path), "binding")
		if err != nil {
			continue
		}
		if accel := ParseBindingValue(raw); accel != "" {
			taken[accel] = append(taken[accel], Holder{SlotPath: path})
		}
	}

	for _, native := range conflictReadKeys {
		if !store.SchemaExists(native.Schema) {
			continue
		}
		raw, err := store.Get(native.Schema, native.Key)
		if err != nil {
			continue
		}
		if accel := ParseBindingValue(raw); accel != "" {
			taken[accel] = append(taken[accel], Holder{Schema: native.Schema, Key: native.Key})
		}
	}
	return taken
}
