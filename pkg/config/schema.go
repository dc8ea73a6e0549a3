package config

// SettingsDocument mirrors the settings file layout for schema generation.
// The live Settings type round-trips the tri-state hotkey through custom
// JSON that reflection cannot see, so the schema is reflected from this
// mirror instead.
type SettingsDocument struct {
	GlobalHotkey *string `json:"global_hotkey,omitempty" jsonschema:"title=Global hotkey,description=Accelerator for the global capture shortcut. Null disables the shortcut; an absent key means no choice was made."`
	SaveDir      string  `json:"save_dir,omitempty" jsonschema:"title=Save directory,description=Directory screenshots are written to. Falls back to the desktop directory when missing or unwritable."`
	EditorBundle string  `json:"editor_bundle,omitempty" jsonschema:"title=Editor bundle,description=Path of the companion editor flatpak bundle recorded at install time."`
}
