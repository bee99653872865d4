//go:build windows

package signame

import (
	"errors"
	"syscall"
)

var ErrUnavailable = errors.New("signame: platform signal table unavailable")

// Table is not available on Windows; Load always fails.
type Table struct{}

func Load() (*Table, error) {
	return nil, ErrUnavailable
}

func (t *Table) Lookup(name string) (syscall.Signal, bool) { return 0, false }

func (t *Table) Name(sig syscall.Signal) (string, bool) { return "", false }

func (t *Table) Names() []string { return nil }

func (t *Table) Len() int { return 0 }
