//go:build linux

// pkg/sigqueue/sigaction_linux.go
package sigqueue

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sigactiont has the layout expected by the rt_sigaction system call
// (asm-generic/signal.h), which is not the layout of the C struct
// sigaction.
type sigactiont struct {
	Handler  uintptr
	Flags    uint64
	Restorer uintptr

	// rt_sigaction wants the kernel sigset size (8) here, not the
	// 128-byte libc sigset_t from the man page.
	Mask uint64
}

func supportsHandlerFlags() bool { return true }

// applyHandlerFlags ORs flags into the sa_flags of the handler currently
// installed for sig. The handler, restorer and mask are left untouched, so
// this composes with the runtime-installed handler.
func applyHandlerFlags(sig syscall.Signal, flags uint64) error {
	var old sigactiont
	if err := rtSigaction(sig, nil, &old); err != nil {
		return err
	}
	if old.Flags&flags == flags {
		return nil
	}
	act := old
	act.Flags |= flags
	return rtSigaction(sig, &act, nil)
}

func rtSigaction(sig syscall.Signal, act, old *sigactiont) error {
	_, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION,
		uintptr(sig),
		uintptr(unsafe.Pointer(act)),
		uintptr(unsafe.Pointer(old)),
		unsafe.Sizeof(uint64(0)),
		0,
		0)

	runtime.KeepAlive(act)
	runtime.KeepAlive(old)
	if errno != 0 {
		return &os.SyscallError{Syscall: "rt_sigaction", Err: errno}
	}
	return nil
}
