package sigqueue

import "errors"

var (
	// ErrTableUnavailable indicates the platform signal-name table could
	// not be obtained. Not recoverable.
	ErrTableUnavailable = errors.New("sigqueue: platform signal table unavailable")

	// ErrAlreadyInitialized is returned by Init while another session is
	// live. Signal dispositions are process-global, so only one session
	// may exist at a time.
	ErrAlreadyInitialized = errors.New("sigqueue: session already initialized")

	// ErrNotInitialized is returned by session operations after Deinit.
	ErrNotInitialized = errors.New("sigqueue: session not initialized")

	// ErrNoSignals is returned by Init when the signal list is empty.
	ErrNoSignals = errors.New("sigqueue: no signals requested")

	// ErrUnknownSignal is returned for names missing from the platform
	// table, or (for Ignore) names outside the managed set.
	ErrUnknownSignal = errors.New("sigqueue: unknown signal")
)
