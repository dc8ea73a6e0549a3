package hotkey

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/logging"
)

// InvalidBindingError reports a binding value that is not a GVariant string
// list literal. Configure refuses such values before touching the registry.
type InvalidBindingError struct {
	Binding string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("invalid binding literal: %q", e.Binding)
}

// Reconciler makes the host keybinding registry match the desired state.
// Every operation re-reads live state; nothing is cached between calls, so
// concurrent edits by the desktop's own settings UI are picked up.
type Reconciler struct {
	store    gsettings.Store
	identity Identity
	scanner  Scanner
	logger   *logrus.Entry
}

// NewReconciler returns a reconciler writing slots with the given identity.
func NewReconciler(store gsettings.Store, identity Identity) *Reconciler {
	return &Reconciler{
		store:    store,
		identity: identity,
		scanner:  Scanner{Store: store, Identity: identity},
		logger:   logging.NewLogger("hotkey"),
	}
}

// ready checks the soft preconditions shared by registry slot operations.
func (r *Reconciler) ready() error {
	if !r.store.Available() {
		return gsettings.ErrUnavailable
	}
	if !r.store.SchemaExists(MediaKeysSchema) {
		return &gsettings.SchemaMissingError{Schema: MediaKeysSchema}
	}
	return nil
}

// Configure writes the application's slot with the given binding literal,
// reusing an owned slot when one exists and allocating the lowest free slot
// otherwise. The registry list is extended before the slot fields are
// written so a partial failure never leaves an active but unlisted slot.
// Calling Configure again with the same binding converges to the same state.
func (r *Reconciler) Configure(binding string) error {
	if !gsettings.IsListLiteral(binding) {
		return &InvalidBindingError{Binding: binding}
	}
	if err := r.ready(); err != nil {
		return err
	}

	paths := r.scanner.ListSlotPaths()
	target := r.scanner.findOwned(paths)
	if target == "" {
		target = FreeSlotPath(paths)
	}
	if !slices.Contains(paths, target) {
		paths = append(paths, target)
		if err := r.store.Set(MediaKeysSchema, CustomKeybindingsKey, gsettings.FormatStringList(paths)); err != nil {
			return err
		}
	}

	schema := SlotSchema(target)
	if err := r.store.Set(schema, "name", r.identity.Name); err != nil {
		return err
	}
	if err := r.store.Set(schema, "command", r.identity.Command); err != nil {
		return err
	}
	if err := r.store.Set(schema, "binding", binding); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"slot": target, "binding": binding}).Debug("configured keybinding slot")
	return nil
}

// Remove drops the application's slot from the registry list. The orphaned
// slot fields stay in the store; only the list decides which slots are
// active. Removing when no slot is owned is a no-op.
func (r *Reconciler) Remove() error {
	if err := r.ready(); err != nil {
		return err
	}
	paths := r.scanner.ListSlotPaths()
	target := r.scanner.findOwned(paths)
	if target == "" {
		return nil
	}
	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if path != target {
			kept = append(kept, path)
		}
	}
	if err := r.store.Set(MediaKeysSchema, CustomKeybindingsKey, gsettings.FormatStringList(kept)); err != nil {
		return err
	}
	r.logger.WithField("slot", target).Debug("removed keybinding slot")
	return nil
}

// DisableNativeBindings clears the desktop's built-in screenshot shortcuts
// so they cannot shadow the custom one. Keys missing on this desktop
// version are skipped silently.
func (r *Reconciler) DisableNativeBindings() error {
	if !r.store.Available() {
		return gsettings.ErrUnavailable
	}
	for _, native := range NativeBindingSet {
		if !r.store.SchemaExists(native.Schema) || !r.store.KeyExists(native.Schema, native.Key) {
			continue
		}
		if err := r.store.Set(native.Schema, native.Key, "[]"); err != nil {
			return err
		}
	}
	return nil
}

// RestoreNativeBindings resets the built-in screenshot shortcuts to their
// schema defaults. Keys missing on this desktop version are skipped
// silently.
func (r *Reconciler) RestoreNativeBindings() error {
	if !r.store.Available() {
		return gsettings.ErrUnavailable
	}
	for _, native := range NativeBindingSet {
		if !r.store.SchemaExists(native.Schema) || !r.store.KeyExists(native.Schema, native.Key) {
			continue
		}
		if err := r.store.Reset(native.Schema, native.Key); err != nil {
			return err
		}
	}
	return nil
}
