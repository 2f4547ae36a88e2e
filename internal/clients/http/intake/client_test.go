package intake

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type captured struct {
	body   string
	header http.Header
}

func newServer(t *testing.T, status int, acao string, seen *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if seen != nil {
			seen.body = string(raw)
			seen.header = r.Header.Clone()
		}
		if acao != "" {
			w.Header().Set("Access-Control-Allow-Origin", acao)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPost_SameOriginReadsStatus(t *testing.T) {
	var seen captured
	srv := newServer(t, http.StatusCreated, "", &seen)
	client, err := NewClient("", srv.Client())
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), srv.URL, []byte(`{"total":8}`), WithIdempotencyKey(" key-1 "))
	require.NoError(t, err)
	require.Equal(t, Response{StatusCode: http.StatusCreated}, resp)
	require.Equal(t, `{"total":8}`, seen.body)
	require.Equal(t, "application/json", seen.header.Get("Content-Type"))
	require.Equal(t, "key-1", seen.header.Get("Idempotency-Key"))
	require.Empty(t, seen.header.Get("Origin"))
}

func TestPost_CrossOriginNoCORSIsOpaque(t *testing.T) {
	var seen captured
	srv := newServer(t, http.StatusInternalServerError, "", &seen)
	client, err := NewClient("https://shop.example", srv.Client())
	require.NoError(t, err)

	resp, err := client.Post(context.Background(), srv.URL, []byte(`{}`), WithNoCORS())
	require.NoError(t, err)
	require.Equal(t, Response{Opaque: true}, resp)
	require.Equal(t, "https://shop.example", seen.header.Get("Origin"))
}

func TestPost_CrossOriginRequiresAllowOrigin(t *testing.T) {
	client := func(t *testing.T, srv *httptest.Server) *Client {
		c, err := NewClient("https://Shop.example/", srv.Client())
		require.NoError(t, err)
		return c
	}

	blocked := newServer(t, http.StatusCreated, "", nil)
	_, err := client(t, blocked).Post(context.Background(), blocked.URL, []byte(`{}`))
	require.True(t, errors.Is(err, ErrCrossOriginBlocked))

	wildcard := newServer(t, http.StatusCreated, "*", nil)
	resp, err := client(t, wildcard).Post(context.Background(), wildcard.URL, []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	exact := newServer(t, http.StatusBadRequest, "https://shop.example", nil)
	resp, err = client(t, exact).Post(context.Background(), exact.URL, []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, Response{StatusCode: http.StatusBadRequest}, resp)
}

func TestPost_TransportError(t *testing.T) {
	srv := newServer(t, http.StatusOK, "", nil)
	url := srv.URL
	srv.Close()

	client, err := NewClient("", nil)
	require.NoError(t, err)
	_, err = client.Post(context.Background(), url, []byte(`{}`))
	require.Error(t, err)
}

func TestNewClient_RejectsRelativeOrigin(t *testing.T) {
	_, err := NewClient("shop.example", nil)
	require.Error(t, err)
}
