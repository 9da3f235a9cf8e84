package input

// Mode is the vi-style modal state of an Input (§3 InputMode).
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

// Delta is the cursor's upper-bound adjustment: Normal mode blocks the
// cursor on the last character (like a terminal block cursor), Insert
// allows it one past the end.
func (m Mode) Delta() int {
	if m == ModeInsert {
		return 0
	}
	return 1
}
