package envmap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/assetgen/errors"
)

func newServer(t *testing.T, hdr []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/files/studio", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		fmt.Fprintf(w, `{"hdri": {"1k": {"hdr": {"url": %q, "size": 3}}, "2k": {}}}`, srv.URL+"/dl/studio_1k.hdr")
	})
	mux.HandleFunc("/files/broken", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hdri": {}}`)
	})
	mux.HandleFunc("/dl/studio_1k.hdr", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(hdr)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	hdr := []byte("#?RADIANCE\x00\x01\x02")
	srv := newServer(t, hdr)
	dest := filepath.Join(t.TempDir(), "env", "studio_1k.hdr")

	f := NewHTTPFetcher(WithAPIBase(srv.URL), WithClient(srv.Client()))
	require.NoError(t, f.Fetch(context.Background(), "studio", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, hdr, got)
}

func TestFetchErrors(t *testing.T) {
	srv := newServer(t, nil)

	tests := []struct {
		name  string
		asset string
		opts  []Option
		phase errors.Phase
	}{
		{"unknown asset", "missing", nil, errors.PhaseFetch},
		{"no url", "broken", nil, errors.PhaseFetch},
		{"resolution", "studio", []Option{WithResolution("2k")}, errors.PhaseFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "out.hdr")
			opts := append([]Option{WithAPIBase(srv.URL), WithClient(srv.Client())}, tt.opts...)
			err := NewHTTPFetcher(opts...).Fetch(context.Background(), tt.asset, dest)
			require.Error(t, err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.phase, e.Phase)

			_, statErr := os.Stat(dest)
			assert.True(t, os.IsNotExist(statErr), "no file on failure")
		})
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := newServer(t, []byte("x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPFetcher(WithAPIBase(srv.URL)).Fetch(ctx, "studio", filepath.Join(t.TempDir(), "x.hdr"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}

func TestDefaultMaps(t *testing.T) {
	require.Len(t, DefaultMaps, 2)
	for _, m := range DefaultMaps {
		assert.Equal(t, m.Name+"_1k.hdr", m.Filename)
	}
}
