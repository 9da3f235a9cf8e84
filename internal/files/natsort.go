package files

// Natural sort comparison, ported from the byte-wise digit-run algorithm
// used by the teacher's own source lineage (a Go rendering of
// shared/src/natsort.rs, itself a port of Martin Pool's strnatcmp.c).
// compareLeft treats a digit run starting with '0' as lexical (zero-padding
// sensitive); compareRight treats a non-zero-led run as purely numeric,
// deciding ties only by the first differing digit ("bias").

// NatCompare orders two strings the way a human expects a file listing
// sorted: embedded digit runs compare numerically, with zero-padding
// disambiguated lexically. insensitive folds ASCII case before comparing
// non-digit bytes.
func NatCompare(left, right string, insensitive bool) int {
	l, r := []byte(left), []byte(right)
	li, ri := 0, 0

	for {
		for li < len(l) && isSpace(l[li]) {
			li++
		}
		for ri < len(r) && isSpace(r[ri]) {
			ri++
		}

		if li >= len(l) && ri >= len(r) {
			return 0
		}
		if li >= len(l) {
			return -1
		}
		if ri >= len(r) {
			return 1
		}

		ll, rr := l[li], r[ri]
		if isDigit(ll) && isDigit(rr) {
			var ord int
			if ll == '0' || rr == '0' {
				ord = compareLeft(l, r, &li, &ri)
			} else {
				ord = compareRight(l, r, &li, &ri)
			}
			if ord != 0 {
				return ord
			}
			continue
		}

		if insensitive {
			ll, rr = lower(ll), lower(rr)
		}
		if ll != rr {
			if ll < rr {
				return -1
			}
			return 1
		}

		li++
		ri++
	}
}

func compareLeft(left, right []byte, li, ri *int) int {
	for {
		lok := *li < len(left) && isDigit(left[*li])
		rok := *ri < len(right) && isDigit(right[*ri])
		switch {
		case lok && rok:
			if left[*li] != right[*ri] {
				if left[*li] < right[*ri] {
					return -1
				}
				return 1
			}
		case lok && !rok:
			return 1
		case !lok && rok:
			return -1
		default:
			return 0
		}
		*li++
		*ri++
	}
}

func compareRight(left, right []byte, li, ri *int) int {
	bias := 0
	for {
		lok := *li < len(left) && isDigit(left[*li])
		rok := *ri < len(right) && isDigit(right[*ri])
		switch {
		case lok && rok:
			if bias == 0 {
				if left[*li] != right[*ri] {
					if left[*li] < right[*ri] {
						bias = -1
					} else {
						bias = 1
					}
				}
			}
		case lok && !rok:
			return 1
		case !lok && rok:
			return -1
		default:
			return bias
		}
		*li++
		*ri++
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f' }
func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
