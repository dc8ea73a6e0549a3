package hotkey

import (
	"regexp"

	"github.com/rafa/screenux-screenshot/pkg/gsettings"
)

var slotPathPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(CustomBasePath) + `/custom\d+/$`)

// Scanner reads the current custom keybinding registrations from a settings
// store. It never caches; every call reflects live state.
type Scanner struct {
	Store    gsettings.Store
	Identity Identity
}

// ListSlotPaths returns the slot paths currently referenced by the registry
// list, in stored order. Entries that are not custom slot paths are dropped,
// and an unreadable or unparseable registry value yields an empty result.
func (s Scanner) ListSlotPaths() []string {
	raw, err := s.Store.Get(MediaKeysSchema, CustomKeybindingsKey)
	if err != nil {
		return nil
	}
	items, err := gsettings.ParseStringList(raw)
	if err != nil {
		return nil
	}
	var paths []string
	for _, item := range items {
		if slotPathPattern.MatchString(item) {
			paths = append(paths, item)
		}
	}
	return paths
}

// FindOwnedSlot returns the first registered slot owned by the identity, or
// "" when none matches.
func (s Scanner) FindOwnedSlot() string {
	return s.findOwned(s.ListSlotPaths())
}

// findOwned scans the given paths in order. Unreadable name or command
// fields count as empty strings rather than errors, so one broken slot does
// not hide a later match.
func (s Scanner) findOwned(paths []string) string {
	for _, path := range paths {
		schema := SlotSchema(path)
		name, _ := s.Store.Get(schema, "name")
		command, _ := s.Store.Get(schema, "command")
		if s.Identity.Matches(gsettings.UnquoteValue(name), gsettings.UnquoteValue(command)) {
			return path
		}
	}
	return ""
}
