package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamseddine-glitch/sha/internal/config"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

func newTestClient(url string) *Client {
	return NewClient(config.RemoteConfig{
		BaseURL:   url,
		MasterKey: "test-key",
		Timeout:   2 * time.Second,
	})
}

func TestGetReturnsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/b/bin1/latest", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Master-Key"))
		w.Write([]byte(`{"record":{"storeName":"Rsure Store"},"metadata":{}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).Get(context.Background(), "bin1")
	require.NoError(t, err)

	var doc struct {
		StoreName string `json:"storeName"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Rsure Store", doc.StoreName)
}

func TestGetNeverWrittenBinIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).Get(context.Background(), "bin1")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestGetNullRecordIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"record":null}`)) //nolint:errcheck
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).Get(context.Background(), "bin1")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestStatusTranslation(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   apperr.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, apperr.Unauthorized},
		{"forbidden", http.StatusForbidden, apperr.Unauthorized},
		{"throttled", http.StatusTooManyRequests, apperr.RateLimited},
		{"server error", http.StatusInternalServerError, apperr.Unavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)

			_, err := c.Get(context.Background(), "bin1")
			assert.True(t, apperr.IsKind(err, tc.kind), "GET: got %v", err)

			err = c.Put(context.Background(), "bin1", map[string]string{"a": "b"})
			assert.True(t, apperr.IsKind(err, tc.kind), "PUT: got %v", err)
		})
	}
}

func TestPutSendsWholeDocument(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/b/bin2", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body := make([]byte, r.ContentLength)
		r.Body.Read(body) //nolint:errcheck
		got = body
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Put(context.Background(), "bin2", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got))
}

func TestNetworkErrorIsUnavailable(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")

	_, err := c.Get(context.Background(), "bin1")
	assert.True(t, apperr.IsKind(err, apperr.Unavailable), "got %v", err)
}
