//go:build !windows

// Package sigqueue turns asynchronous POSIX signal delivery into a
// synchronous, pollable queue of signal names. A session owns a set of
// managed signals for its lifetime: delivery of a managed signal enqueues
// its name exactly once (repeat deliveries of an unconsumed signal
// coalesce), consumers block on Wait or poll with Ready, and Deinit
// restores the dispositions that were in effect before Init.
//
// Signal dispositions are process-global state, so at most one session may
// be live per process; a second Init fails with ErrAlreadyInitialized until
// the first session is deinitialized.
package sigqueue

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/mattias-p/Signal-Queue/internal/signame"
)

// Exactly one live session per process.
var (
	activeMu sync.Mutex
	active   bool
)

// Options configures handler installation at Init.
type Options struct {
	// ExtraFlags is ORed into the installed handler's sa_flags on
	// platforms where the handler's flags can be adjusted (Linux). The
	// runtime always installs handlers with SA_RESTART; ExtraFlags can
	// only add flags, never clear them.
	ExtraFlags uint64
}

// disposition records what was in effect for a managed signal before Init,
// so Deinit can put it back.
type disposition struct {
	wasIgnored bool
}

// Session is a live signal-queue session. All methods are safe for
// concurrent use; Wait blocks until a managed signal is pending.
type Session struct {
	id     string
	table  *signame.Table
	logger *slog.Logger

	mu           sync.Mutex
	cond         *sync.Cond
	queue        *pendingQueue
	managed      []syscall.Signal
	dispositions map[syscall.Signal]disposition
	ignored      map[syscall.Signal]bool
	closed       bool

	ch           chan os.Signal
	done         chan struct{}
	appliedFlags uint64
}

// Init resolves names against the platform signal table, captures each
// signal's current disposition, and arms delivery for the whole set. The
// managed set is fixed for the session's lifetime.
//
// Fails with ErrTableUnavailable if the platform table cannot be obtained,
// ErrAlreadyInitialized if a session is live, ErrNoSignals for an empty
// list, and ErrUnknownSignal for a name missing from the table.
func Init(names []string, opts Options) (*Session, error) {
	table, err := signame.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableUnavailable, err)
	}
	if len(names) == 0 {
		return nil, ErrNoSignals
	}

	var managed []syscall.Signal
	var seen uint64
	for _, name := range names {
		sig, ok := table.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSignal, name)
		}
		if seen&sigBit(sig) != 0 {
			continue
		}
		seen |= sigBit(sig)
		managed = append(managed, sig)
	}

	activeMu.Lock()
	defer activeMu.Unlock()
	if active {
		return nil, ErrAlreadyInitialized
	}

	s := &Session{
		id:           uuid.NewString(),
		table:        table,
		logger:       slog.Default(),
		queue:        newPendingQueue(len(managed)),
		managed:      managed,
		dispositions: make(map[syscall.Signal]disposition, len(managed)),
		ignored:      make(map[syscall.Signal]bool),
		ch:           make(chan os.Signal, len(managed)),
		done:         make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)

	for _, sig := range managed {
		s.dispositions[sig] = disposition{wasIgnored: signal.Ignored(sig)}
	}

	sigs := make([]os.Signal, len(managed))
	for i, sig := range managed {
		sigs[i] = sig
	}
	signal.Notify(s.ch, sigs...)

	if supportsHandlerFlags() && opts.ExtraFlags != 0 {
		for _, sig := range managed {
			if err := applyHandlerFlags(sig, opts.ExtraFlags); err != nil {
				s.restoreDispositions()
				signal.Stop(s.ch)
				return nil, fmt.Errorf("sigqueue: applying handler flags for %s: %w", s.name(sig), err)
			}
		}
		s.appliedFlags = opts.ExtraFlags
	}

	active = true
	go s.deliver()

	s.logger.Debug("signal session initialized",
		"session_id", s.id,
		"signals", s.managedNames(),
		"extra_flags", opts.ExtraFlags)
	return s, nil
}

// deliver drains the notify channel into the pending queue. It runs until
// Deinit closes the channel. For each delivery the signal is first disarmed
// (set to ignore) so repeats of an unconsumed signal are dropped by the OS;
// the queue's dedup covers deliveries already buffered in the channel.
func (s *Session) deliver() {
	defer close(s.done)
	for raw := range s.ch {
		sig, ok := raw.(syscall.Signal)
		if !ok {
			continue
		}
		s.mu.Lock()
		if s.closed || s.ignored[sig] {
			s.mu.Unlock()
			continue
		}
		signal.Ignore(sig)
		if s.queue.push(sig) {
			s.cond.Broadcast()
		}
		s.mu.Unlock()
	}
}

// Wait blocks until a managed signal is pending, removes the oldest one,
// re-arms its delivery, and returns its name. Signals are returned in
// strict FIFO order of first delivery. Fails with ErrNotInitialized once
// the session is deinitialized, including for waiters already blocked when
// Deinit is called.
func (s *Session) Wait() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.closed {
			return "", ErrNotInitialized
		}
		sig, ok := s.queue.pop()
		if !ok {
			s.cond.Wait()
			continue
		}
		signal.Notify(s.ch, sig)
		name := s.name(sig)
		s.logger.Debug("signal consumed", "session_id", s.id, "signal", name)
		return name, nil
	}
}

// Ready reports whether a signal is pending. It never mutates the queue,
// the dispositions, or the managed set.
func (s *Session) Ready() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrNotInitialized
	}
	return !s.queue.empty(), nil
}

// Ignore permanently (until Deinit) installs the ignore disposition for a
// managed signal and evicts any queued entry for it. The signal stays in
// the managed set so Deinit still restores its original disposition.
func (s *Session) Ignore(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotInitialized
	}
	sig, ok := s.table.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSignal, name)
	}
	if !s.isManaged(sig) {
		return fmt.Errorf("%w: %s not managed by this session", ErrUnknownSignal, s.name(sig))
	}
	s.ignored[sig] = true
	signal.Ignore(sig)
	s.queue.remove(sig)
	s.logger.Debug("signal ignored", "session_id", s.id, "signal", s.name(sig))
	return nil
}

// Deinit restores the dispositions captured at Init, drains the queue, and
// returns the names of signals that were still pending, in FIFO order. A
// subsequent Init is legal again once Deinit returns.
func (s *Session) Deinit() ([]string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrNotInitialized
	}
	s.closed = true
	pending := s.queue.drain()
	s.restoreDispositions()
	s.cond.Broadcast()
	logger := s.logger
	s.mu.Unlock()

	signal.Stop(s.ch)
	close(s.ch)
	<-s.done

	names := make([]string, len(pending))
	for i, sig := range pending {
		names[i] = s.name(sig)
	}

	activeMu.Lock()
	active = false
	activeMu.Unlock()

	logger.Debug("signal session deinitialized",
		"session_id", s.id, "pending", names)
	return names, nil
}

// restoreDispositions puts every managed signal back the way Init found it.
func (s *Session) restoreDispositions() {
	for _, sig := range s.managed {
		if s.dispositions[sig].wasIgnored {
			signal.Ignore(sig)
		} else {
			signal.Reset(sig)
		}
		delete(s.dispositions, sig)
	}
}

// SetLogger sets the logger for the session.
func (s *Session) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	s.mu.Lock()
	s.logger = logger
	s.mu.Unlock()
}

// ID returns the session's unique identifier, assigned at Init.
func (s *Session) ID() string {
	return s.id
}

// AppliedFlags returns the extra sa_flags that actually took effect.
// Zero on platforms where handler flags cannot be adjusted.
func (s *Session) AppliedFlags() uint64 {
	return s.appliedFlags
}

// Managed returns the canonical names of the managed set, in Init order.
func (s *Session) Managed() []string {
	return s.managedNames()
}

func (s *Session) isManaged(sig syscall.Signal) bool {
	for _, m := range s.managed {
		if m == sig {
			return true
		}
	}
	return false
}

func (s *Session) name(sig syscall.Signal) string {
	name, ok := s.table.Name(sig)
	if !ok {
		return fmt.Sprintf("SIG%d", int(sig))
	}
	return name
}

func (s *Session) managedNames() []string {
	names := make([]string, len(s.managed))
	for i, sig := range s.managed {
		names[i] = s.name(sig)
	}
	return names
}
