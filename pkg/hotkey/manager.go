package hotkey

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/config"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/logging"
)

// WarnPortalBestEffort is surfaced on non-GNOME desktops.
const WarnPortalBestEffort = "Portal hotkey backend is best-effort on this desktop; GNOME keybindings are required for closed-app behavior."

// RegistrationResult reports the outcome of one registration pass. An empty
// Shortcut means the hotkey is disabled; Warning carries a user-facing
// explanation for anything short of the preferred outcome.
type RegistrationResult struct {
	Shortcut string
	Warning  string
}

// Manager drives end-to-end registration: preference from the settings
// file, desktop detection, conflict resolution, registry writes and
// preference persistence.
type Manager struct {
	Store        gsettings.Store
	Identity     Identity
	SettingsPath string

	// DefaultPreference replaces the built-in default shortcut when the
	// settings file carries no explicit choice.
	DefaultPreference string

	// ExtraFallbacks extends the candidate chain after the built-in
	// fallbacks.
	ExtraFallbacks []string

	Getenv func(string) string

	logger *logrus.Entry
}

// NewManager returns a manager using the application's default identity.
func NewManager(store gsettings.Store, settingsPath string) *Manager {
	return &Manager{
		Store:        store,
		Identity:     DefaultIdentity(),
		SettingsPath: settingsPath,
		Getenv:       os.Getenv,
	}
}

// EnsureRegistered runs a registration pass from the stored preference and
// persists the outcome whenever it differs from that preference or the
// preference was never explicit.
func (m *Manager) EnsureRegistered() (RegistrationResult, error) {
	settings := config.LoadSettings(m.SettingsPath)
	preferred, explicit := m.preference(settings)

	var (
		result RegistrationResult
		err    error
	)
	if desktop.IsGNOME(m.getenv()) {
		result, err = m.registerGNOME(preferred)
	} else {
		result = registerPortal(preferred)
	}
	if err != nil {
		return result, err
	}

	if result.Shortcut != preferred || !explicit {
		if result.Shortcut == "" {
			settings.DisableGlobalHotkey()
		} else {
			settings.SetGlobalHotkey(result.Shortcut)
		}
		if err := config.SaveSettings(m.SettingsPath, settings); err != nil {
			return result, fmt.Errorf("failed to persist hotkey preference: %w", err)
		}
	}
	return result, nil
}

// Apply normalizes and persists a new preference, then runs a registration
// pass.
func (m *Manager) Apply(accel string) (RegistrationResult, error) {
	normalized, err := NormalizeAccel(accel)
	if err != nil {
		return RegistrationResult{}, err
	}
	settings := config.LoadSettings(m.SettingsPath)
	settings.SetGlobalHotkey(normalized)
	if err := config.SaveSettings(m.SettingsPath, settings); err != nil {
		return RegistrationResult{}, fmt.Errorf("failed to persist hotkey preference: %w", err)
	}
	return m.EnsureRegistered()
}

// Disable persists an explicit disable, removes any registration and puts
// the native screenshot bindings back on their defaults.
func (m *Manager) Disable() (RegistrationResult, error) {
	settings := config.LoadSettings(m.SettingsPath)
	settings.DisableGlobalHotkey()
	if err := config.SaveSettings(m.SettingsPath, settings); err != nil {
		return RegistrationResult{}, fmt.Errorf("failed to persist hotkey preference: %w", err)
	}
	result, err := m.EnsureRegistered()
	if err != nil {
		return result, err
	}
	if desktop.IsGNOME(m.getenv()) {
		if err := NewReconciler(m.Store, m.Identity).RestoreNativeBindings(); err != nil && !errors.Is(err, gsettings.ErrUnavailable) {
			return result, err
		}
	}
	return result, nil
}

// registerGNOME applies the preference to the GNOME keybinding registry. An
// empty preferred removes any registration. Backend or schema absence is
// reported as a warning, not an error.
func (m *Manager) registerGNOME(preferred string) (RegistrationResult, error) {
	logger := m.log()
	logger.WithFields(logrus.Fields{
		"event":     "hotkey.register.start",
		"preferred": preferred,
	}).Info("registering GNOME global shortcut")

	if !m.Store.Available() {
		return RegistrationResult{Shortcut: preferred, Warning: WarnBackendMissing}, nil
	}
	if !m.Store.SchemaExists(MediaKeysSchema) {
		return RegistrationResult{Shortcut: preferred, Warning: WarnSchemaUnavailable}, nil
	}

	reconciler := NewReconciler(m.Store, m.Identity)
	scanner := Scanner{Store: m.Store, Identity: m.Identity}
	ownedPath := scanner.FindOwnedSlot()

	if preferred == "" {
		if err := reconciler.Remove(); err != nil {
			return RegistrationResult{}, err
		}
		return RegistrationResult{}, nil
	}

	normalized, err := NormalizeAccel(preferred)
	if err != nil {
		return RegistrationResult{}, err
	}

	taken := TakenShortcuts(m.Store, ownedPath)
	resolved, warning := m.resolveWithReclaim(normalized, taken)
	logger.WithFields(logrus.Fields{
		"event":    "hotkey.register.resolve",
		"shortcut": resolved,
		"fallback": warning != "",
	}).Info("resolved global shortcut candidate")

	if resolved == "" {
		if err := reconciler.Remove(); err != nil {
			return RegistrationResult{}, err
		}
		return RegistrationResult{Warning: warning}, nil
	}

	literal, err := ToBindingLiteral(resolved)
	if err != nil {
		return RegistrationResult{}, err
	}
	if err := reconciler.Configure(literal); err != nil {
		return RegistrationResult{}, err
	}
	logger.WithFields(logrus.Fields{
		"event":    "hotkey.register.persisted",
		"shortcut": resolved,
		"binding":  literal,
	}).Info("wrote GNOME keybinding slot")
	return RegistrationResult{Shortcut: resolved, Warning: warning}, nil
}

// registerPortal is the non-GNOME path. There is no registry to write a
// closed-app shortcut into, so the result reports the normalized preference
// with a best-effort warning.
func registerPortal(preferred string) RegistrationResult {
	if preferred == "" {
		return RegistrationResult{}
	}
	normalized, err := NormalizeAccel(preferred)
	if err != nil {
		return RegistrationResult{Shortcut: DefaultShortcut, Warning: "Invalid shortcut value; using default shortcut."}
	}
	return RegistrationResult{Shortcut: normalized, Warning: WarnPortalBestEffort}
}

// resolveWithReclaim walks the candidate chain. The preferred candidate may
// be reclaimed by clearing native holders; fallbacks must be genuinely free.
// A failed reclaim demotes the preferred candidate to taken.
func (m *Manager) resolveWithReclaim(preferred string, taken map[string][]Holder) (string, string) {
	for index, candidate := range m.candidateChain(preferred) {
		holders := taken[candidate]
		free := len(holders) == 0
		if !free && index == 0 && allNative(holders) {
			free = m.reclaimNative(holders)
		}
		if !free {
			continue
		}
		if index == 0 {
			return candidate, ""
		}
		return candidate, fmt.Sprintf("Shortcut %s is in use. Using %s.", preferred, candidate)
	}
	return "", WarnNoCandidate
}

func (m *Manager) candidateChain(preferred string) []string {
	chain := CandidateChain(preferred)
	for _, extra := range m.ExtraFallbacks {
		normalized, err := NormalizeAccel(extra)
		if err != nil {
			m.log().Warnf("ignoring invalid fallback shortcut %q", extra)
			continue
		}
		if !slices.Contains(chain, normalized) {
			chain = append(chain, normalized)
		}
	}
	return chain
}

// reclaimNative clears every holder, rolling the attempt up as failed on
// the first write the backend refuses.
func (m *Manager) reclaimNative(holders []Holder) bool {
	for _, holder := range holders {
		if err := m.Store.Set(holder.Schema, holder.Key, "[]"); err != nil {
			m.log().WithError(err).Warnf("could not clear native binding %s %s", holder.Schema, holder.Key)
			return false
		}
	}
	m.log().WithField("count", len(holders)).Debug("reclaimed native screenshot bindings")
	return true
}

func allNative(holders []Holder) bool {
	for _, holder := range holders {
		if !holder.Native() {
			return false
		}
	}
	return true
}

// preference reads the stored choice: the default when absent, "" when
// explicitly disabled, the normalized accelerator otherwise. Invalid stored
// values fall back to the default.
func (m *Manager) preference(settings *config.Settings) (string, bool) {
	value, present := settings.HotkeyPreference()
	if !present {
		return m.defaultPreference(), false
	}
	if value == nil {
		return "", true
	}
	normalized, err := NormalizeAccel(*value)
	if err != nil {
		return m.defaultPreference(), true
	}
	return normalized, true
}

func (m *Manager) defaultPreference() string {
	if m.DefaultPreference != "" {
		if normalized, err := NormalizeAccel(m.DefaultPreference); err == nil {
			return normalized
		}
	}
	return DefaultShortcut
}

// Status is a read-only snapshot of config and registry state.
type Status struct {
	GNOMEDesktop     bool                `json:"gnome_desktop" yaml:"gnome_desktop"`
	BackendAvailable bool                `json:"backend_available" yaml:"backend_available"`
	SchemaPresent    bool                `json:"schema_present" yaml:"schema_present"`
	PreferenceSet    bool                `json:"preference_set" yaml:"preference_set"`
	Disabled         bool                `json:"disabled" yaml:"disabled"`
	Preference       string              `json:"preference,omitempty" yaml:"preference,omitempty"`
	OwnedSlot        string              `json:"owned_slot,omitempty" yaml:"owned_slot,omitempty"`
	Binding          string              `json:"binding,omitempty" yaml:"binding,omitempty"`
	Accel            string              `json:"accel,omitempty" yaml:"accel,omitempty"`
	Taken            map[string][]Holder `json:"taken,omitempty" yaml:"taken,omitempty"`
}

// Status inspects the settings file and the registry without writing
// anything.
func (m *Manager) Status() Status {
	settings := config.LoadSettings(m.SettingsPath)
	value, present := settings.HotkeyPreference()
	status := Status{
		GNOMEDesktop:     desktop.IsGNOME(m.getenv()),
		BackendAvailable: m.Store.Available(),
		PreferenceSet:    present,
		Disabled:         present && value == nil,
	}
	if value != nil {
		status.Preference = *value
	}
	if !status.BackendAvailable {
		return status
	}
	status.SchemaPresent = m.Store.SchemaExists(MediaKeysSchema)
	if !status.SchemaPresent {
		return status
	}

	scanner := Scanner{Store: m.Store, Identity: m.Identity}
	status.OwnedSlot = scanner.FindOwnedSlot()
	if status.OwnedSlot != "" {
		if raw, err := m.Store.Get(SlotSchema(status.OwnedSlot), "binding"); err == nil {
			status.Binding = strings.TrimSpace(raw)
			status.Accel = ParseBindingValue(raw)
		}
	}
	status.Taken = TakenShortcuts(m.Store, status.OwnedSlot)
	return status
}

func (m *Manager) getenv() func(string) string {
	if m.Getenv != nil {
		return m.Getenv
	}
	return os.Getenv
}

func (m *Manager) log() *logrus.Entry {
	if m.logger == nil {
		m.logger = logging.NewLogger("hotkey")
	}
	return m.logger
}
