package overlay

import "testing"

func TestSelect_ConfirmReportsHighlightedIndex(t *testing.T) {
	s := NewSelect()
	var gotIdx int
	var gotOk bool
	s.Show("open with", []Option{{Title: "vim"}, {Title: "code"}}, func(idx int, ok bool) {
		gotIdx, gotOk = idx, ok
	})
	s.Move(1)
	s.Confirm()
	if !gotOk || gotIdx != 1 {
		t.Fatalf("expected (1,true), got (%d,%v)", gotIdx, gotOk)
	}
	if s.Visible {
		t.Fatalf("expected hidden after confirm")
	}
}

func TestSelect_CancelReportsNotOk(t *testing.T) {
	s := NewSelect()
	called := false
	var gotOk bool
	s.Show("open with", []Option{{Title: "vim"}}, func(_ int, ok bool) { called = true; gotOk = ok })
	s.Cancel()
	if !called || gotOk {
		t.Fatalf("expected cancel callback with ok=false, called=%v ok=%v", called, gotOk)
	}
}

func TestSelect_ConfirmOnEmptyListIsNoOp(t *testing.T) {
	s := NewSelect()
	called := false
	s.Show("open with", nil, func(int, bool) { called = true })
	if s.Confirm() {
		t.Fatalf("expected Confirm to report false on an empty list")
	}
	if called {
		t.Fatalf("expected no callback fired on empty-list confirm")
	}
}

func TestSelect_MoveClampsAndFollowsViewport(t *testing.T) {
	s := NewSelect()
	s.SetMaxVisible(2)
	opts := make([]Option, 5)
	s.Show("pick", opts, func(int, bool) {})
	s.Move(-1) // clamp at 0
	if s.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", s.Cursor())
	}
	s.Move(10) // clamp at len-1
	if s.Cursor() != 4 {
		t.Fatalf("expected cursor clamped to 4, got %d", s.Cursor())
	}
	start, end := s.Window()
	if end-start > 2 {
		t.Fatalf("expected window of at most 2, got [%d,%d)", start, end)
	}
	if s.Cursor() < start || s.Cursor() >= end {
		t.Fatalf("cursor %d outside window [%d,%d)", s.Cursor(), start, end)
	}
}

func TestHelp_ToggleShowsThenHides(t *testing.T) {
	h := NewHelp()
	entries := []HelpEntry{{Chord: "g g", Desc: "top"}, {Chord: "d d", Desc: "cut"}}
	if !h.Toggle(entries) {
		t.Fatalf("expected Toggle to show")
	}
	if len(h.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h.Entries()))
	}
	if h.Toggle(nil) {
		t.Fatalf("expected second Toggle to hide")
	}
}

func TestHelp_FilterNarrowsByChordOrDesc(t *testing.T) {
	h := NewHelp()
	h.Toggle([]HelpEntry{
		{Chord: "g g", Desc: "top"},
		{Chord: "g e", Desc: "bottom"},
		{Chord: "d d", Desc: "cut"},
	})
	if err := h.SetFilter("^g"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Entries()) != 2 {
		t.Fatalf("expected 2 entries matching '^g', got %d", len(h.Entries()))
	}
	if err := h.SetFilter("cut"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Entries()) != 1 {
		t.Fatalf("expected 1 entry matching 'cut', got %d", len(h.Entries()))
	}
}

func TestHelp_InvalidFilterReportsErrorAndKeepsPrevious(t *testing.T) {
	h := NewHelp()
	h.Toggle([]HelpEntry{{Chord: "g g", Desc: "top"}})
	if err := h.SetFilter("("); err == nil {
		t.Fatalf("expected an error for invalid regex")
	}
	if len(h.Entries()) != 1 {
		t.Fatalf("expected filter to remain unfiltered after a bad pattern, got %d entries", len(h.Entries()))
	}
}

func TestTasks_ToggleAndSelect(t *testing.T) {
	ts := NewTasks()
	rows := []TaskSummary{{ID: 1, Name: "copy"}, {ID: 2, Name: "delete"}}
	if !ts.Toggle(rows) {
		t.Fatalf("expected Toggle to show")
	}
	ts.Move(1)
	sel, ok := ts.Selected()
	if !ok || sel.ID != 2 {
		t.Fatalf("expected selected task id 2, got %+v ok=%v", sel, ok)
	}
	if ts.Toggle(nil) {
		t.Fatalf("expected second Toggle to hide")
	}
}

func TestTasks_SelectedFalseWhenEmpty(t *testing.T) {
	ts := NewTasks()
	ts.Toggle(nil)
	if _, ok := ts.Selected(); ok {
		t.Fatalf("expected no selection on an empty task list")
	}
}
