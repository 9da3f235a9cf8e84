package scheduler

import (
	"errors"
	"syscall"
)

// DefaultBizarreRetry mirrors the original's hardcoded retryable errno
// list (§9 Supplemented features "Bizarre retry set"). Only the
// portable members of that list are kept here. `internal/config` does
// not fall back to this variable: Tasks.RetryErrnoSet has its own
// default name list, which also includes ENOATTR. No worker calls
// Retryable, so a failed paste is not retried.
var DefaultBizarreRetry = []syscall.Errno{syscall.EINTR, syscall.EPERM}

// Retryable reports whether err unwraps to one of the given errnos.
func Retryable(err error, set []syscall.Errno) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, e := range set {
		if errno == e {
			return true
		}
	}
	return false
}
