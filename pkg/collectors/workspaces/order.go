// Package workspaces polls the tiling backend's workspace list and focus,
// and orders workspaces for display. Ordering is a fixed role table; names
// not in the table sort after every known role, alphabetically.
package workspaces

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// roleOrder is the display order of known workspace roles. Lower index
// renders further left.
var roleOrder = []string{
	"terminal",
	"coding",
	"browser",
	"music",
	"design",
	"communication",
	"misc",
	"files",
	"mail",
	"tasks",
}

// unknownRank sorts after every known role.
var unknownRank = len(roleOrder)

var rankByRole = func() map[string]int {
	m := make(map[string]int, len(roleOrder))
	for i, r := range roleOrder {
		m[r] = i
	}
	return m
}()

// Rank returns the display rank for a workspace name. Unknown names all
// share unknownRank and are tie-broken by name.
func Rank(name string) int {
	if r, ok := rankByRole[strings.ToLower(name)]; ok {
		return r
	}
	return unknownRank
}

// Known reports whether name is one of the fixed roles.
func Known(name string) bool {
	_, ok := rankByRole[strings.ToLower(name)]
	return ok
}

// IconName returns the component icon name for a workspace.
func IconName(name string) string {
	if Known(name) {
		return "ws-" + strings.ToLower(name)
	}
	return "ws-unknown"
}

// Sort orders names in place: known roles first in table order, then
// unknown names alphabetically. The sort is stable only in effect; equal
// ranks are fully ordered by name so output is deterministic.
func Sort(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ri, rj := Rank(names[i]), Rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}

// Overrides customises per-workspace display without changing ordering.
type Overrides struct {
	// Workspaces maps a workspace name to its display overrides.
	Workspaces map[string]Override `yaml:"workspaces"`

	// Hidden workspaces are dropped from the bar entirely.
	Hidden []string `yaml:"hidden"`
}

// Override adjusts how one workspace renders.
type Override struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

// LoadOverrides reads an overrides file. A missing file is not an error;
// it yields empty overrides.
func LoadOverrides(path string) (Overrides, error) {
	var ov Overrides
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ov, nil
		}
		return ov, fmt.Errorf("workspaces: read overrides: %w", err)
	}
	if err := yaml.Unmarshal(b, &ov); err != nil {
		return ov, fmt.Errorf("workspaces: parse overrides %s: %w", path, err)
	}
	return ov, nil
}

func (o Overrides) hidden(name string) bool {
	for _, h := range o.Hidden {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func (o Overrides) apply(ws *Workspace) {
	ovr, ok := o.Workspaces[ws.Name]
	if !ok {
		return
	}
	if ovr.Label != "" {
		ws.Label = ovr.Label
	}
	if ovr.Icon != "" {
		ws.Icon = ovr.Icon
	}
}
