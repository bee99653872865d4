//go:build !windows

// Package signame provides the platform signal-name table: the mapping
// between canonical short signal names (HUP, ALRM, USR1) and the platform's
// signal numbers. The table is read-only once built.
package signame

import (
	"errors"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrUnavailable is returned by Load when the platform yields no usable
// signal table.
var ErrUnavailable = errors.New("signame: platform signal table unavailable")

// maxScan bounds the signal-number scan. Standard signals live well below
// this on every supported platform.
const maxScan = 64

// Table maps between canonical short signal names and signal numbers.
type Table struct {
	byName map[string]syscall.Signal
	byNum  map[syscall.Signal]string
}

// Load builds the signal-name table from the platform's signal list.
// It fails with ErrUnavailable if the platform reports no named signals.
func Load() (*Table, error) {
	t := &Table{
		byName: make(map[string]syscall.Signal),
		byNum:  make(map[syscall.Signal]string),
	}

	for sig := syscall.Signal(1); sig < maxScan; sig++ {
		name := unix.SignalName(sig)
		if name == "" {
			continue
		}
		short := strings.TrimPrefix(name, "SIG")
		if strings.HasPrefix(short, "RT") {
			// Realtime signals have queued-delivery semantics the
			// session does not implement.
			continue
		}
		t.byName[short] = sig
		t.byNum[sig] = short
	}

	if len(t.byName) == 0 {
		return nil, ErrUnavailable
	}
	return t, nil
}

// Lookup resolves a signal name to its number. Names are matched
// case-insensitively and an optional SIG prefix is accepted; the canonical
// form is the short upper-case name.
func (t *Table) Lookup(name string) (syscall.Signal, bool) {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "SIG")
	sig, ok := t.byName[s]
	return sig, ok
}

// Name returns the canonical short name for a signal number.
func (t *Table) Name(sig syscall.Signal) (string, bool) {
	name, ok := t.byNum[sig]
	return name, ok
}

// Names returns all canonical short names, sorted by signal number.
func (t *Table) Names() []string {
	sigs := make([]syscall.Signal, 0, len(t.byNum))
	for sig := range t.byNum {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })

	names := make([]string, len(sigs))
	for i, sig := range sigs {
		names[i] = t.byNum[sig]
	}
	return names
}

// Len returns the number of signals in the table.
func (t *Table) Len() int {
	return len(t.byName)
}
