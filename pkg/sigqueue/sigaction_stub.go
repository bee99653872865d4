//go:build !linux && !windows

package sigqueue

import "syscall"

// Handler flags cannot be adjusted without raw sigaction access; ExtraFlags
// is accepted but not applied on these platforms.

func supportsHandlerFlags() bool { return false }

func applyHandlerFlags(sig syscall.Signal, flags uint64) error { return nil }
