package which

import "testing"

func testBindings() []Binding {
	return []Binding{
		{Chord: []string{"g", "g"}, Exec: "arrow --n=-999999", Desc: "top"},
		{Chord: []string{"g", "e"}, Exec: "arrow --n=999999", Desc: "bottom"},
		{Chord: []string{"d", "d"}, Exec: "delete", Desc: "cut"},
	}
}

func TestResolver_StartsChord(t *testing.T) {
	r := New(testBindings())
	if !r.StartsChord("g") {
		t.Fatalf("expected 'g' to start a chord")
	}
	if r.StartsChord("z") {
		t.Fatalf("expected 'z' not to start a chord")
	}
}

func TestResolver_NarrowsThenMatches(t *testing.T) {
	r := New(testBindings())
	r.Press("g")
	if !r.Active() {
		t.Fatalf("expected resolver active after first press")
	}
	if len(r.Candidates()) != 2 {
		t.Fatalf("expected 2 candidates after 'g', got %d", len(r.Candidates()))
	}
	exec, matched, cancelled := r.Press("g")
	if !matched || cancelled {
		t.Fatalf("expected match on 'g g', matched=%v cancelled=%v", matched, cancelled)
	}
	if exec != "arrow --n=-999999" {
		t.Fatalf("unexpected exec %q", exec)
	}
	if r.Active() {
		t.Fatalf("expected resolver reset after a match")
	}
}

func TestResolver_CancelsOnDeadEnd(t *testing.T) {
	r := New(testBindings())
	r.Press("g")
	_, matched, cancelled := r.Press("z")
	if matched || !cancelled {
		t.Fatalf("expected cancel on dead end, matched=%v cancelled=%v", matched, cancelled)
	}
	if r.Active() {
		t.Fatalf("expected resolver reset after cancel")
	}
}

func TestResolver_Reset_ClearsInProgressChord(t *testing.T) {
	r := New(testBindings())
	r.Press("d")
	r.Reset()
	if r.Active() {
		t.Fatalf("expected resolver inactive after Reset")
	}
	// pressing 'd' again after reset should behave as a fresh start
	_, matched, cancelled := r.Press("d")
	if matched || cancelled {
		t.Fatalf("expected still-narrowing state after fresh 'd', matched=%v cancelled=%v", matched, cancelled)
	}
}

func TestResolver_DistinctBranchesDoNotCrossMatch(t *testing.T) {
	r := New(testBindings())
	r.Press("d")
	_, matched, cancelled := r.Press("e")
	if matched || !cancelled {
		t.Fatalf("expected cancel for 'd e' (not a binding), matched=%v cancelled=%v", matched, cancelled)
	}
}
