// Package scene loads the YAML scene file naming which scripted listeners to
// attach at startup.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/framehost/engine/internal/dispatch"
)

// Binding attaches one Lua function to one phase.
type Binding struct {
	Name     string `yaml:"name"`     // display name for logs
	Phase    string `yaml:"phase"`    // update | physics | late_update
	Function string `yaml:"function"` // Lua global to invoke
}

// Table holds the parsed scene with phases already resolved.
type Table struct {
	bindings []Binding
	phases   []dispatch.Phase
}

// Load reads and validates a scene file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var entries []Binding
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	t := &Table{
		bindings: entries,
		phases:   make([]dispatch.Phase, len(entries)),
	}
	for i := range entries {
		if entries[i].Function == "" {
			return nil, fmt.Errorf("scene entry %d (%s): missing function", i, entries[i].Name)
		}
		p, err := dispatch.ParsePhase(entries[i].Phase)
		if err != nil {
			return nil, fmt.Errorf("scene entry %d (%s): %w", i, entries[i].Name, err)
		}
		t.phases[i] = p
	}
	return t, nil
}

// Each visits every binding with its resolved phase, in file order.
func (t *Table) Each(fn func(b Binding, phase dispatch.Phase)) {
	for i := range t.bindings {
		fn(t.bindings[i], t.phases[i])
	}
}

// Count returns the number of bindings loaded.
func (t *Table) Count() int {
	return len(t.bindings)
}
