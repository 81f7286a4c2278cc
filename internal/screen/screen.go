package screen

import (
	"fmt"
	"sort"
)

const (
	// MapID is the reserved identifier of the map screen
	MapID = 0

	// MapDisplayName is the name given to a synthesized map screen
	MapDisplayName = "Map"

	// MapKind is the kind tag carried by the map screen
	MapKind = "map"
)

// Screen is one monitorable unit shown on the display.
// Values are created fresh for every snapshot and never mutated in place.
type Screen struct {
	ID          int    `json:"id"`
	DisplayName string `json:"name"`
	IsMap       bool   `json:"is_map"`
	Code        string `json:"code,omitempty"` // Upstream display code (e.g. "M4")
	Kind        string `json:"kind,omitempty"` // Upstream screen kind, "map" for id 0
}

// String returns a short label such as "M4 Pipeline map"
func (s Screen) String() string {
	return fmt.Sprintf("M%d %s", s.ID, s.DisplayName)
}

// MapScreen returns the locally synthesized map screen
func MapScreen() Screen {
	return Screen{
		ID:          MapID,
		DisplayName: MapDisplayName,
		IsMap:       true,
		Code:        "M0",
		Kind:        MapKind,
	}
}

// Entry is one decoded feed item before validation.
// ID is a pointer so a missing id can be told apart from the map id.
type Entry struct {
	ID     *int
	Name   string
	Active bool
	Code   string
	Kind   string
}

// Normalize converts raw feed entries into the canonical screen list.
// Malformed entries are dropped individually and returned as *EntryError values.
func Normalize(entries []Entry) ([]Screen, []error) {
	var problems []error
	seen := make(map[int]bool, len(entries))
	screens := make([]Screen, 0, len(entries)+1)

	for i, entry := range entries {
		if !entry.Active {
			continue
		}
		if entry.ID == nil {
			problems = append(problems, &EntryError{Index: i, Reason: "missing id"})
			continue
		}
		id := *entry.ID
		if id < 0 {
			problems = append(problems, &EntryError{Index: i, ID: id, Reason: "negative id"})
			continue
		}
		if seen[id] {
			problems = append(problems, &EntryError{Index: i, ID: id, Reason: "duplicate id"})
			continue
		}
		seen[id] = true

		if id == MapID {
			m := MapScreen()
			if entry.Name != "" {
				m.DisplayName = entry.Name
			}
			screens = append(screens, m)
			continue
		}

		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("Screen %d", id)
		}
		code := entry.Code
		if code == "" {
			code = fmt.Sprintf("M%d", id)
		}
		screens = append(screens, Screen{
			ID:          id,
			DisplayName: name,
			Code:        code,
			Kind:        entry.Kind,
		})
	}

	sort.SliceStable(screens, func(a, b int) bool {
		return screens[a].ID < screens[b].ID
	})

	return EnsureMap(screens), problems
}

// EnsureMap prepends the map screen when the list is non-empty and lacks it.
// The input slice is not modified.
func EnsureMap(screens []Screen) []Screen {
	if len(screens) == 0 {
		return screens
	}
	if IndexOf(screens, MapID) >= 0 {
		return screens
	}
	out := make([]Screen, 0, len(screens)+1)
	out = append(out, MapScreen())
	return append(out, screens...)
}

// IndexOf returns the list index of the screen with the given id, or -1
func IndexOf(screens []Screen, id int) int {
	for i, s := range screens {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the screen with the given id
func Find(screens []Screen, id int) (Screen, bool) {
	if i := IndexOf(screens, id); i >= 0 {
		return screens[i], true
	}
	return Screen{}, false
}

// IsMapOnly reports whether the list holds nothing but the map screen.
// Such a list selects the Map view exactly like an empty one.
func IsMapOnly(screens []Screen) bool {
	return len(screens) == 1 && screens[0].IsMap
}

// HasContent reports whether the list contains at least one non-map screen
func HasContent(screens []Screen) bool {
	for _, s := range screens {
		if !s.IsMap {
			return true
		}
	}
	return false
}

// IDs returns the ids of the list in order
func IDs(screens []Screen) []int {
	ids := make([]int, len(screens))
	for i, s := range screens {
		ids[i] = s.ID
	}
	return ids
}
