package memory

import "testing"

func TestDocumentStateReplace(t *testing.T) {
	s := &DocumentState{}

	if s.Document() != "" || s.Seq() != 0 {
		t.Fatal("fresh state must be empty at seq 0")
	}

	if seq := s.Replace("first"); seq != 1 {
		t.Errorf("first replace seq = %d, want 1", seq)
	}
	if seq := s.Replace("second"); seq != 2 {
		t.Errorf("second replace seq = %d, want 2", seq)
	}
	if s.Document() != "second" {
		t.Errorf("document = %q, want %q", s.Document(), "second")
	}
}

func TestDocumentRepositoryGetOrCreate(t *testing.T) {
	r := NewDocumentRepository()

	state := r.GetOrCreate("session-1", "seeded", 7)
	if state.Document() != "seeded" || state.Seq() != 7 {
		t.Fatalf("seed not applied: %q seq %d", state.Document(), state.Seq())
	}

	// Second call returns the resident state, ignoring the seed.
	again := r.GetOrCreate("session-1", "other", 0)
	if again != state {
		t.Error("GetOrCreate must return the resident state")
	}

	if _, found := r.Get("session-2"); found {
		t.Error("unknown session must not be found")
	}

	r.Delete("session-1")
	if _, found := r.Get("session-1"); found {
		t.Error("deleted session must not be found")
	}
}
