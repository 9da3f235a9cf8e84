package files

import (
	"sort"
	"testing"
)

func assertSorted(t *testing.T, in []string) {
	t.Helper()
	got := append([]string(nil), in...)
	sort.SliceStable(got, func(i, j int) bool { return NatCompare(got[i], got[j], true) < 0 })
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("natural sort mismatch at %d: got %q want %q\nfull: %v", i, got[i], in[i], got)
		}
	}
}

func TestNaturalSort_Dates(t *testing.T) {
	assertSorted(t, []string{"1999-3-3", "1999-12-25", "2000-1-2", "2000-1-10", "2000-3-23"})
}

func TestNaturalSort_Fractions(t *testing.T) {
	assertSorted(t, []string{
		"1.002.01", "1.002.03", "1.002.08", "1.009.02", "1.009.10", "1.009.20", "1.010.12", "1.011.02",
	})
}

func TestNaturalSort_Words(t *testing.T) {
	assertSorted(t, []string{
		"1-02", "1-2", "1-20", "10-20", "fred", "jane", "pic01", "pic02", "pic02a", "pic02000",
		"pic05", "pic2", "pic3", "pic4", "pic 4 else", "pic 5", "pic 5 ", "pic 5 something",
		"pic 6", "pic   7", "pic100", "pic100a", "pic120", "pic121", "tom", "x2-g8", "x2-y08",
		"x2-y7", "x8-y8",
	})
}

// TestNaturalSort_TotalOrder verifies §8's round-trip property: reversing
// then sorting gives the reverse of the original sort.
func TestNaturalSort_TotalOrder(t *testing.T) {
	in := []string{"b10", "a2", "a10", "b2", "a1"}
	forward := append([]string(nil), in...)
	sort.SliceStable(forward, func(i, j int) bool { return NatCompare(forward[i], forward[j], true) < 0 })

	reversed := append([]string(nil), in...)
	sort.SliceStable(reversed, func(i, j int) bool { return NatCompare(reversed[i], reversed[j], true) > 0 })

	for i := range forward {
		if forward[i] != reversed[len(reversed)-1-i] {
			t.Fatalf("reverse sort is not the mirror of forward sort: %v vs %v", forward, reversed)
		}
	}
}

func TestNaturalSort_ZeroPadding(t *testing.T) {
	if NatCompare("pic02", "pic2", true) == 0 {
		t.Fatal("pic02 and pic2 must not compare equal: zero-padded runs fall back to lexical compare")
	}
}

func TestNaturalSort_CaseSensitivity(t *testing.T) {
	if NatCompare("README.md", "readme.md", true) != 0 {
		t.Fatal("insensitive compare should treat README.md and readme.md as equal ordering keys")
	}
	if NatCompare("README.md", "readme.md", false) == 0 {
		t.Fatal("sensitive compare should distinguish case")
	}
}
