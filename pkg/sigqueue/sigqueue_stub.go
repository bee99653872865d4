//go:build windows

package sigqueue

import (
	"errors"
	"log/slog"
)

var ErrNotSupported = errors.New("sigqueue: not supported on Windows")

// Options configures handler installation at Init. Unused on Windows.
type Options struct {
	ExtraFlags uint64
}

// Session is not available on Windows; Init always fails.
type Session struct{}

func Init(names []string, opts Options) (*Session, error) {
	return nil, ErrNotSupported
}

func (s *Session) Wait() (string, error) { return "", ErrNotSupported }

func (s *Session) Ready() (bool, error) { return false, ErrNotSupported }

func (s *Session) Ignore(name string) error { return ErrNotSupported }

func (s *Session) Deinit() ([]string, error) { return nil, ErrNotSupported }

func (s *Session) SetLogger(logger *slog.Logger) {}

func (s *Session) ID() string { return "" }

func (s *Session) AppliedFlags() uint64 { return 0 }

func (s *Session) Managed() []string { return nil }
