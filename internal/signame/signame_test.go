//go:build !windows

package signame

import (
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Greater(t, table.Len(), 10)
}

func TestLookup(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		want syscall.Signal
	}{
		{"HUP", unix.SIGHUP},
		{"INT", unix.SIGINT},
		{"TERM", unix.SIGTERM},
		{"ALRM", unix.SIGALRM},
		{"USR1", unix.SIGUSR1},
		{"USR2", unix.SIGUSR2},
	}
	for _, tt := range tests {
		sig, ok := table.Lookup(tt.name)
		require.True(t, ok, "lookup %s", tt.name)
		assert.Equal(t, tt.want, sig)
	}
}

func TestLookupFlexibleInput(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	want, ok := table.Lookup("HUP")
	require.True(t, ok)

	for _, input := range []string{"hup", "SIGHUP", "sighup", " HUP ", "SigHup"} {
		sig, ok := table.Lookup(input)
		require.True(t, ok, "lookup %q", input)
		assert.Equal(t, want, sig)
	}
}

func TestLookupUnknown(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	_, ok := table.Lookup("NOSUCHSIG")
	assert.False(t, ok)
	_, ok = table.Lookup("")
	assert.False(t, ok)
}

func TestNameRoundTrip(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	for _, name := range table.Names() {
		sig, ok := table.Lookup(name)
		require.True(t, ok)
		back, ok := table.Name(sig)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
}

func TestNamesSortedBySignalNumber(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	names := table.Names()
	require.Len(t, names, table.Len())

	prev := syscall.Signal(0)
	for _, name := range names {
		sig, ok := table.Lookup(name)
		require.True(t, ok)
		assert.Greater(t, sig, prev)
		prev = sig
	}
}

func TestNoRealtimeSignals(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	for _, name := range table.Names() {
		assert.False(t, strings.HasPrefix(name, "RT"), "realtime signal %s in table", name)
	}
}
