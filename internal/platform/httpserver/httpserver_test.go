package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesDefaultLimits(t *testing.T) {
	srv := New(":0", http.NotFoundHandler(), nil)

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, DefaultLimits.ReadHeader, srv.ReadHeaderTimeout)
	assert.Equal(t, DefaultLimits.Write, srv.WriteTimeout)
	assert.Equal(t, DefaultLimits.HeaderSize, srv.MaxHeaderBytes)
	assert.NotNil(t, srv.ErrorLog)
}

func TestNewWithLimitsOverridesTimeouts(t *testing.T) {
	l := DefaultLimits
	l.Write = time.Second
	srv := NewWithLimits(":0", http.NotFoundHandler(), nil, l)

	assert.Equal(t, time.Second, srv.WriteTimeout)
	assert.Equal(t, DefaultLimits.Idle, srv.IdleTimeout)
}
