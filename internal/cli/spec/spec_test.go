package spec

import "testing"

func TestLoadDefaultSpec(t *testing.T) {
	spec, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() err=%v", err)
	}
	if spec.App.Name == "" {
		t.Fatalf("expected app name set")
	}
	if len(spec.Commands) == 0 {
		t.Fatalf("expected commands")
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	if err := Validate([]byte("")); err == nil {
		t.Fatalf("expected error for empty spec")
	}
}

func TestEveryLeafHasUniqueID(t *testing.T) {
	spec, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() err=%v", err)
	}
	seen := map[string]bool{}
	for _, cmd := range spec.AllCommands() {
		if seen[cmd.ID] {
			t.Fatalf("duplicate command id %q", cmd.ID)
		}
		seen[cmd.ID] = true
	}
	for _, id := range []string{"demo", "layout.list", "layout.import", "layout.delete", "config.show", "version"} {
		if spec.FindByID(id) == nil {
			t.Fatalf("FindByID(%q) = nil", id)
		}
	}
}

func TestValidateRejectsUnknownFlagType(t *testing.T) {
	doc := []byte(`version: 1
app:
  name: peakydock
  summary: test
commands:
  - name: demo
    id: demo
    summary: demo
    flags:
      - name: size
        type: complex
`)
	if err := Validate(doc); err == nil {
		t.Fatalf("expected schema error for unknown flag type")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	doc := []byte(`version: 1
app:
  name: peakydock
  summary: test
commands:
  - name: demo
    id: demo
    summary: demo
    shortcut: d
`)
	if _, err := Parse(doc); err == nil {
		t.Fatalf("expected schema error for unknown key")
	}
}
