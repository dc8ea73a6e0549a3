package hotkey

import (
	"strings"

	"github.com/rafa/screenux-screenshot/pkg/app"
)

// Identity is the (display name, command) pair that marks a custom
// keybinding slot as belonging to this application. Either field alone is
// sufficient evidence of ownership, so a hand-edited name or command does
// not orphan the slot.
type Identity struct {
	Name    string
	Command string
}

// DefaultIdentity returns the identity new slots are written with.
func DefaultIdentity() Identity {
	return Identity{Name: app.DisplayName, Command: app.CaptureCommand}
}

// Matches reports whether a slot carrying the given name and command belongs
// to this identity. The command comparison tolerates an absolute path
// prefix, so slots written by installers that point at the installed binary
// still match.
func (id Identity) Matches(name, command string) bool {
	if id.Name != "" && strings.TrimSpace(name) == id.Name {
		return true
	}
	command = strings.TrimSpace(command)
	if id.Command == "" || command == "" {
		return false
	}
	if command == id.Command {
		return true
	}
	return strings.HasSuffix(command, "/"+id.Command)
}
