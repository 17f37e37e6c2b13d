package sshd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerRequiresClientBin(t *testing.T) {
	_, err := NewServer(Config{Addr: ":2222"})
	assert.Error(t, err)
}

func TestNewServerDefaults(t *testing.T) {
	srv, err := NewServer(Config{Addr: ":2222", ClientBin: "/usr/bin/true"})
	require.NoError(t, err)

	assert.Equal(t, ":2222", srv.Addr)
	assert.Equal(t, DefaultIdleTimeout, srv.IdleTimeout)
}

func TestNewServerCustomIdleTimeout(t *testing.T) {
	srv, err := NewServer(Config{
		Addr:        ":2222",
		ClientBin:   "/usr/bin/true",
		IdleTimeout: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
}

func TestNewServerBadHostKey(t *testing.T) {
	_, err := NewServer(Config{
		Addr:        ":2222",
		ClientBin:   "/usr/bin/true",
		HostKeyPath: "/nonexistent/host_key",
	})
	assert.Error(t, err)
}
