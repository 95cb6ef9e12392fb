package config

// Slots names the segments in each bar slot, in render order.
type Slots struct {
	Left   []string
	Center []string
	Right  []string
}

var layoutPresets = map[string]Slots{
	"full": {
		Left:   []string{"workspaces"},
		Center: []string{"title"},
		Right:  []string{"media", "weather", "cpu", "battery", "keepawake", "clock"},
	},
	"compact": {
		Left:   []string{"workspaces"},
		Center: []string{"title"},
		Right:  []string{"cpu", "battery", "clock"},
	},
	"minimal": {
		Left:  []string{"workspaces"},
		Right: []string{"clock"},
	},
}

// LayoutPreset returns the slot layout for a named preset. Unrecognized
// names fall back to "full".
func LayoutPreset(name string) Slots {
	if s, ok := layoutPresets[name]; ok {
		return s
	}
	return layoutPresets["full"]
}

// LayoutNames returns the recognized preset names.
func LayoutNames() []string {
	return []string{"compact", "full", "minimal"}
}
