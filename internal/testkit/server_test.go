package testkit

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StopRestart(t *testing.T) {
	listener, URL, err := reserve()
	require.NoError(t, err)
	server := newServer(listener, URL, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	assert.True(t, server.Running())
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, server.Stop())
	assert.False(t, server.Running())
	assert.NoError(t, server.Stop())

	require.NoError(t, server.Restart())
	resp, err = http.Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, server.Stop())
}

func TestServer_StopReportsServeError(t *testing.T) {
	listener, URL, err := reserve()
	require.NoError(t, err)
	require.NoError(t, listener.Close())
	server := newServer(listener, URL, http.NotFoundHandler())
	err = server.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serve")
	assert.False(t, server.Running())
}
