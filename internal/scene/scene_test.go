package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framehost/engine/internal/dispatch"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadResolvesPhases(t *testing.T) {
	tbl, err := Load(writeScene(t, `
- name: ai
  phase: update
  function: ai_think
- name: projectiles
  phase: physics
  function: step_projectiles
- name: camera
  phase: late_update
  function: follow_camera
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Count() != 3 {
		t.Fatalf("Count = %d, want 3", tbl.Count())
	}

	var fns []string
	var phases []dispatch.Phase
	tbl.Each(func(b Binding, p dispatch.Phase) {
		fns = append(fns, b.Function)
		phases = append(phases, p)
	})
	wantFns := []string{"ai_think", "step_projectiles", "follow_camera"}
	wantPhases := []dispatch.Phase{dispatch.Update, dispatch.Physics, dispatch.LateUpdate}
	for i := range wantFns {
		if fns[i] != wantFns[i] || phases[i] != wantPhases[i] {
			t.Errorf("binding %d = %s/%v, want %s/%v", i, fns[i], phases[i], wantFns[i], wantPhases[i])
		}
	}
}

func TestLoadRejectsUnknownPhase(t *testing.T) {
	_, err := Load(writeScene(t, `
- name: bad
  phase: render
  function: draw
`))
	if err == nil {
		t.Error("Load accepted unknown phase")
	}
}

func TestLoadRejectsMissingFunction(t *testing.T) {
	_, err := Load(writeScene(t, `
- name: bad
  phase: update
`))
	if err == nil {
		t.Error("Load accepted binding without function")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing file did not fail")
	}
}
