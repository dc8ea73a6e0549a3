package hotkey

import "fmt"

// FreeSlotPath returns the lowest-numbered slot path not present in
// occupied, scanning upward from custom0. Gaps left by removed slots are
// reused before new indices are minted.
func FreeSlotPath(occupied []string) string {
	taken := make(map[string]struct{}, len(occupied))
	for _, path := range occupied {
		taken[path] = struct{}{}
	}
	for index := 0; ; index++ {
		candidate := fmt.Sprintf("%s/custom%d/", CustomBasePath, index)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
