package healthz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

func newTestServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	l, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	_ = server.Listener.Close()
	server.Listener = l
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "service unavailable", status: http.StatusServiceUnavailable, wantErr: true},
		{name: "not found", status: http.StatusNotFound, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status)
			err := Probe(t.Context(), server.Client(), server.URL+"/healthz")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), http.StatusText(tt.status))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProbeUnreachable(t *testing.T) {
	l, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.Error(t, Probe(ctx, nil, "http://"+addr+"/healthz"))
}
