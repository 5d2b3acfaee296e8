package tone

import (
	"testing"
)

func TestResolveFallback(t *testing.T) {
	def := Resolve(DefaultID)

	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"unknown id", "nonexistent-tone"},
		{"whitespace id", "   "},
		{"case mismatch", "Friendly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.id)
			if got != def {
				t.Errorf("Resolve(%q) = %+v, want default descriptor %+v", tt.id, got, def)
			}
		})
	}
}

func TestResolveKnownTones(t *testing.T) {
	for _, id := range IDs() {
		d := Resolve(id)
		if d.ID != id {
			t.Errorf("Resolve(%q).ID = %q", id, d.ID)
		}
		if d.Description == "" || d.StyleGuide == "" || d.Example == "" {
			t.Errorf("Resolve(%q) returned incomplete descriptor: %+v", id, d)
		}
	}
}

func TestDefaultIsRegistered(t *testing.T) {
	if Resolve(DefaultID).ID != DefaultID {
		t.Fatalf("default tone %q is not registered", DefaultID)
	}
}
