package hotkey

import (
	"fmt"
	"slices"
)

// Fallback warnings surfaced to the user. The wording is stable because the
// desktop notification layer matches on it.
const (
	WarnNoCandidate       = "No available global shortcut candidate; hotkey disabled."
	WarnBackendMissing    = "gsettings is unavailable; global hotkey not configured."
	WarnSchemaUnavailable = "GNOME media key schema not available; global hotkey not configured."
)

// CandidateChain returns the combinations tried for a preferred accelerator:
// the preference itself, then the default, then the fixed fallbacks, with
// duplicates removed.
func CandidateChain(preferred string) []string {
	chain := []string{preferred}
	for _, candidate := range append([]string{DefaultShortcut}, FallbackShortcuts...) {
		if !slices.Contains(chain, candidate) {
			chain = append(chain, candidate)
		}
	}
	return chain
}

// ResolveWithFallback picks the first candidate in the chain for which
// isTaken reports false. A non-empty warning explains a non-preferred pick;
// an empty accelerator together with WarnNoCandidate means every candidate
// was taken. The preferred value is normalized before the chain is built.
func ResolveWithFallback(preferred string, isTaken func(string) bool) (string, string, error) {
	normalized, err := NormalizeAccel(preferred)
	if err != nil {
		return "", "", err
	}
	for index, candidate := range CandidateChain(normalized) {
		if isTaken(candidate) {
			continue
		}
		if index == 0 {
			return candidate, "", nil
		}
		return candidate, fmt.Sprintf("Shortcut %s is in use. Using %s.", normalized, candidate), nil
	}
	return "", WarnNoCandidate, nil
}
