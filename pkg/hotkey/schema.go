package hotkey

// GNOME schema and path constants for custom keybinding slots.
const (
	// MediaKeysSchema holds the custom-keybindings registry list and the
	// legacy built-in screenshot keys.
	MediaKeysSchema = "org.gnome.settings-daemon.plugins.media-keys"

	// CustomKeybindingSchema is the relocatable per-slot schema; it is always
	// addressed together with a slot path.
	CustomKeybindingSchema = MediaKeysSchema + ".custom-keybinding"

	// ShellKeybindingsSchema holds the gnome-shell screenshot keys on modern
	// GNOME versions.
	ShellKeybindingsSchema = "org.gnome.shell.keybindings"

	// CustomKeybindingsKey is the registry list key under MediaKeysSchema.
	CustomKeybindingsKey = "custom-keybindings"

	// CustomBasePath is the dconf directory custom keybinding slots live
	// under.
	CustomBasePath = "/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings"
)

// SlotSchema returns the relocatable schema address for one slot path.
func SlotSchema(path string) string {
	return CustomKeybindingSchema + ":" + path
}

// NativeKey identifies one desktop built-in screenshot binding.
type NativeKey struct {
	Schema string
	Key    string
}

// NativeBindingSet is the fixed set of built-in screenshot shortcuts that
// DisableNativeBindings and RestoreNativeBindings operate on. Keys absent on
// a given GNOME version are skipped at run time.
var NativeBindingSet = []NativeKey{
	{ShellKeybindingsSchema, "show-screenshot"},
	{ShellKeybindingsSchema, "show-screenshot-ui"},
	{ShellKeybindingsSchema, "show-screen-recording-ui"},
	{MediaKeysSchema, "screenshot"},
	{MediaKeysSchema, "window-screenshot"},
	{MediaKeysSchema, "area-screenshot"},
}

// conflictReadKeys is the wider set consulted when collecting taken
// combinations. The clipboard variants claim key combinations too, but they
// are never cleared wholesale by disable.
var conflictReadKeys = []NativeKey{
	{ShellKeybindingsSchema, "show-screenshot"},
	{ShellKeybindingsSchema, "show-screenshot-ui"},
	{ShellKeybindingsSchema, "show-screen-recording-ui"},
	{MediaKeysSchema, "screenshot"},
	{MediaKeysSchema, "window-screenshot"},
	{MediaKeysSchema, "area-screenshot"},
	{MediaKeysSchema, "screenshot-clip"},
	{MediaKeysSchema, "window-screenshot-clip"},
	{MediaKeysSchema, "area-screenshot-clip"},
}
