// Package input implements the modal (vi-style) text editor used for
// every prompt: rename, create, search query, shell command (§4.6 Input).
package input

import (
	"github.com/atotto/clipboard"
	runewidth "github.com/mattn/go-runewidth"
)

// viewportWidth is the input box's usable column width: a hard-coded
// 50-column box minus a 2-column border, matching the original's own
// "// TODO: hardcode" constant.
const viewportWidth = 50 - 2

// Opt configures a single Show() prompt.
type Opt struct {
	Title     string
	Value     string
	Highlight bool // shell prompts get command-syntax highlighting
}

// Input is a single modal prompt. Exactly one Show pairs with exactly
// one callback invocation, on submit or cancel (§4.6 close contract).
type Input struct {
	snaps   Snaps
	Visible bool

	Title     string
	Highlight bool
	callback  func(value string, ok bool)

	clipboardGet func() (string, error)
	clipboardSet func(string) error
}

// New creates an Input wired to the system clipboard.
func New() *Input {
	in := &Input{
		clipboardGet: clipboard.ReadAll,
		clipboardSet: clipboard.WriteAll,
	}
	in.snaps.Reset("")
	return in
}

// Show opens the prompt, first closing (canceling) any prior one.
func (in *Input) Show(opt Opt, callback func(value string, ok bool)) {
	in.Close(false)
	in.snaps.Reset(opt.Value)
	in.Visible = true
	in.Title = opt.Title
	in.Highlight = opt.Highlight
	in.callback = callback
}

// Close fires the callback (if not already taken) and hides the prompt.
// A repeated Close is a no-op, matching "callback taken" semantics.
func (in *Input) Close(submit bool) bool {
	if in.callback != nil {
		cb := in.callback
		in.callback = nil
		if submit {
			cb(in.snaps.Current().Value, true)
		} else {
			cb("", false)
		}
	}
	in.Visible = false
	return true
}

// Escape steps back one layer: Insert -> Normal, Normal-with-operator ->
// Normal-no-operator, Normal-with-no-operator -> closes (cancel).
func (in *Input) Escape() bool {
	snap := in.snaps.Current()
	switch {
	case snap.Mode == ModeNormal && snap.Op.Kind == OpNone:
		in.Close(false)
	case snap.Mode == ModeNormal:
		snap.Op = Op{}
	default: // Insert
		snap.Mode = ModeNormal
		in.move(-1)
	}
	in.snaps.Tag()
	return true
}

// Insert enters Insert mode; if append, the cursor first steps right
// one scalar (vi's "a" vs "i").
func (in *Input) Insert(appendAfter bool) bool {
	if !in.snaps.Current().tryInsert() {
		return false
	}
	if appendAfter {
		in.move(1)
	}
	return true
}

// Visual arms a Select operator anchored at the cursor.
func (in *Input) Visual() bool { return in.snaps.Current().tryVisual() }

// Undo walks the version stack backward; undoing out of Insert drops to
// Normal first (escaping without committing further text).
func (in *Input) Undo() bool {
	if !in.snaps.Undo() {
		return false
	}
	if in.snaps.Current().Mode == ModeInsert {
		in.Escape()
	}
	return true
}

// Redo walks the version stack forward.
func (in *Input) Redo() bool { return in.snaps.Redo() }

// Move steps the cursor by step scalars, applying any armed operator to
// the traversed range (a plain cursor move when Op is None/Select).
func (in *Input) Move(step int) bool { return in.move(step) }

// MoveInOperating moves only while an operator is armed; a no-op
// otherwise (used for motions that should do nothing standalone, e.g.
// mid-chord repeat counts).
func (in *Input) MoveInOperating(step int) bool {
	if in.snaps.Current().Op.Kind == OpNone {
		return false
	}
	return in.move(step)
}

func (in *Input) move(step int) bool {
	cur := in.snaps.Current()
	var target int
	if step <= 0 {
		target = cur.Cursor + step
		if target < 0 {
			target = 0
		}
	} else {
		count := runeCount(cur.Value)
		target = cur.Cursor + step
		if target > count {
			target = count
		}
	}

	changed := in.handleOp(target, false)

	snap := in.snaps.Current()
	switch {
	case snap.Cursor < snap.Offset:
		snap.Offset = snap.Cursor
	case snap.Value == "":
		snap.Offset = 0
	default:
		delta := snap.Mode.Delta()
		end := snap.Cursor + delta
		if count := runeCount(snap.Value); end > count {
			end = count
		}
		window := runeSlice(snap.Value, snap.Offset, end)
		if runewidth.StringWidth(window) >= viewportWidth {
			snap.Offset = findWindowStart(snap.Value, snap.Cursor, delta)
		}
	}
	return changed
}

// findWindowStart scans backward from cursor+delta, accumulating display
// width, and returns the smallest offset that still fits in
// viewportWidth columns.
func findWindowStart(value string, cursor, delta int) int {
	runes := []rune(value)
	end := cursor + delta
	if end > len(runes) {
		end = len(runes)
	}
	width, offset := 0, end
	for offset > 0 {
		w := runewidth.RuneWidth(runes[offset-1])
		if width+w >= viewportWidth {
			break
		}
		width += w
		offset--
	}
	return offset
}

// Window returns the visible [start, end) scalar range, scanning forward
// from Offset until the display width would exceed viewportWidth.
func (in *Input) Window() (start, end int) {
	snap := in.snaps.Current()
	runes := []rune(snap.Value)
	start = snap.Offset
	if start > len(runes) {
		start = len(runes)
	}
	width, i := 0, start
	for i < len(runes) {
		w := runewidth.RuneWidth(runes[i])
		if width+w > viewportWidth {
			break
		}
		width += w
		i++
	}
	return start, i
}

// Backward moves to the previous word boundary (§4.6).
func (in *Input) Backward() bool {
	snap := in.snaps.Current()
	if snap.Cursor == 0 {
		return in.move(0)
	}
	runes := []rune(snap.Value)
	idx := snap.Cursor
	prev := ClassifyChar(runes[idx-1])
	for i := 1; i < idx; i++ {
		c := ClassifyChar(runes[idx-1-i])
		if prev != Space && prev != c {
			return in.move(-i)
		}
		prev = c
	}
	if prev != Space {
		return in.move(-idx)
	}
	return false
}

// Forward moves to the start of the next word, or (end=true) to the end
// of the current word (§4.6).
func (in *Input) Forward(end bool) bool {
	snap := in.snaps.Current()
	runes := []rune(snap.Value)
	if len(runes) == 0 {
		return in.move(0)
	}
	rest := runes[snap.Cursor:]
	if len(rest) == 0 {
		return in.move(len(runes))
	}

	prev := ClassifyChar(rest[0])
	for i := 1; i < len(rest); i++ {
		c := ClassifyChar(rest[i])
		var boundary bool
		if end {
			boundary = prev != Space && prev != c && i != 1
		} else {
			boundary = c != Space && c != prev
		}
		if boundary {
			if snap.Op.Kind != OpNone && snap.Op.Kind != OpSelect {
				return in.move(i)
			}
			if end {
				return in.move(i - 1)
			}
			return in.move(i)
		}
		prev = c
	}
	return in.move(len(runes))
}

// Type inserts s at the cursor and advances past it.
func (in *Input) Type(s string) bool {
	snap := in.snaps.Current()
	bs := runeIdx(snap.Value, snap.Cursor)
	snap.Value = snap.Value[:bs] + s + snap.Value[bs:]
	return in.move(runeCount(s))
}

// Backspace deletes the scalar before the cursor.
func (in *Input) Backspace() bool {
	snap := in.snaps.Current()
	if snap.Cursor < 1 {
		return false
	}
	bs, be := runeIdx(snap.Value, snap.Cursor-1), runeIdx(snap.Value, snap.Cursor)
	snap.Value = snap.Value[:bs] + snap.Value[be:]
	return in.move(-1)
}

// Delete arms a Delete operator (if none is pending), closes it against
// a pending Select range, or — if Delete is already the pending
// operator — re-issues it over the whole line (§4.6 "same op re-issued").
func (in *Input) Delete(cut, insertAfter bool) bool {
	snap := in.snaps.Current()
	switch snap.Op.Kind {
	case OpNone:
		snap.Op = Op{Kind: OpDelete, Cut: cut, InsertAfter: insertAfter, Start: snap.Cursor}
		return false
	case OpSelect:
		start := snap.Op.Start
		snap.Op = Op{Kind: OpDelete, Cut: cut, InsertAfter: insertAfter, Start: start}
		changed := in.handleOp(snap.Cursor, true)
		if changed {
			in.move(0)
		}
		return changed
	case OpDelete:
		snap.Op = Op{Kind: OpDelete, Cut: cut, InsertAfter: insertAfter, Start: 0}
		return in.move(runeCount(snap.Value))
	default:
		return false
	}
}

// Yank mirrors Delete without draining the buffer (§4.6).
func (in *Input) Yank() bool {
	snap := in.snaps.Current()
	switch snap.Op.Kind {
	case OpNone:
		snap.Op = Op{Kind: OpYank, Start: snap.Cursor}
		return false
	case OpSelect:
		start := snap.Op.Start
		snap.Op = Op{Kind: OpYank, Start: start}
		changed := in.handleOp(snap.Cursor, true)
		if changed {
			in.move(0)
		}
		return changed
	case OpYank:
		snap.Op = Op{Kind: OpYank, Start: 0}
		in.move(runeCount(snap.Value))
		return false
	default:
		return false
	}
}

// Paste first deletes any pending Select range, then inserts the system
// clipboard's contents before or after the cursor, then returns to
// Normal mode.
func (in *Input) Paste(before bool) bool {
	snap := in.snaps.Current()
	if start, ok := snap.Op.HasStart(); ok {
		snap.Op = Op{Kind: OpDelete, Start: start}
		in.handleOp(snap.Cursor, true)
	}

	str, err := in.clipboardGet()
	if err != nil || str == "" {
		return false
	}

	in.Insert(!before)
	for _, r := range str {
		in.Type(string(r))
	}
	in.Escape()
	return true
}

// handleOp applies the pending operator against [start, cursor] (or just
// repositions the cursor if no operator is armed), clamps the result,
// and tags the undo stack when a real edit took place.
func (in *Input) handleOp(cursor int, include bool) bool {
	snap := in.snaps.Current()
	old := *snap
	oldOpKind := old.Op.Kind

	switch snap.Op.Kind {
	case OpNone, OpSelect:
		snap.Cursor = cursor
	case OpDelete:
		start, end, _ := snap.Op.Range(cursor, include)
		bs, be := runeIdx(snap.Value, start), runeIdx(snap.Value, end)
		drained := snap.Value[bs:be]
		snap.Value = snap.Value[:bs] + snap.Value[be:]
		if snap.Op.Cut {
			in.clipboardSet(drained)
		}
		insertAfter := snap.Op.InsertAfter
		snap.Op = Op{}
		if insertAfter {
			snap.Mode = ModeInsert
		} else {
			snap.Mode = ModeNormal
		}
		snap.Cursor = start
	case OpYank:
		start, end, _ := snap.Op.Range(cursor, include)
		bs, be := runeIdx(snap.Value, start), runeIdx(snap.Value, end)
		yanked := snap.Value[bs:be]
		snap.Op = Op{}
		in.clipboardSet(yanked)
	}

	count := runeCount(snap.Value)
	maxCursor := count - snap.Mode.Delta()
	if maxCursor < 0 {
		maxCursor = 0
	}
	if snap.Cursor > maxCursor {
		snap.Cursor = maxCursor
	}

	if *snap == old {
		return false
	}
	if oldOpKind != OpNone && oldOpKind != OpSelect {
		in.snaps.Tag()
	}
	return true
}

// Value returns the full buffer text.
func (in *Input) Value() string { return in.snaps.Current().Value }

// VisibleValue returns the slice of Value currently within the viewport.
func (in *Input) VisibleValue() string {
	start, end := in.Window()
	return runeSlice(in.snaps.Current().Value, start, end)
}

// Mode returns the current Normal/Insert mode.
func (in *Input) Mode() Mode { return in.snaps.Current().Mode }

// CursorColumn returns the cursor's display column within the viewport.
func (in *Input) CursorColumn() int {
	snap := in.snaps.Current()
	return runewidth.StringWidth(runeSlice(snap.Value, snap.Offset, snap.Cursor))
}

// Selected returns the pending operator's [start, end) scalar range
// clamped to the viewport, or ok=false when no operator is armed.
func (in *Input) Selected() (start, end int, ok bool) {
	snap := in.snaps.Current()
	s, has := snap.Op.HasStart()
	if !has {
		return 0, 0, false
	}
	if s < snap.Cursor {
		start, end = s, snap.Cursor+1
	} else {
		start, end = snap.Cursor, s+1
	}
	winStart, winEnd := in.Window()
	if start < winStart {
		start = winStart
	}
	if end > winEnd {
		end = winEnd
	}
	return start, end, true
}
