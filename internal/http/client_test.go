package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, `name:"Pikachu" number:"SWSH143"`, r.URL.Query().Get("q"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL}, zerolog.Nop())

	body, err := client.Search(context.Background(), `name:"Pikachu" number:"SWSH143"`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestClient_Search_StatusMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantNotFound  bool
		wantTransient bool
	}{
		{name: "not found", status: http.StatusNotFound, wantNotFound: true},
		{name: "rate limited", status: http.StatusTooManyRequests, wantTransient: true},
		{name: "internal error", status: http.StatusInternalServerError, wantTransient: true},
		{name: "bad gateway", status: http.StatusBadGateway, wantTransient: true},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantTransient: true},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, wantTransient: true},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "forbidden", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Options{BaseURL: server.URL}, zerolog.Nop())
			_, err := client.Search(context.Background(), `name:"Mew"`)
			require.Error(t, err)

			assert.Equal(t, tt.wantNotFound, errors.Is(err, ErrNotFound))
			assert.Equal(t, tt.wantTransient, IsTransient(err))

			if !tt.wantNotFound {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.status, se.Code)
			}
		})
	}
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Options{BaseURL: url, Timeout: time.Second}, zerolog.Nop())
	_, err := client.Search(context.Background(), `name:"Mew"`)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsTransient(err))
}

func TestClient_Search_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Options{BaseURL: server.URL}, zerolog.Nop())
	_, err := client.Search(ctx, `name:"Mew"`)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	client := NewClient(Options{}, zerolog.Nop())

	data, err := client.Get(context.Background(), server.URL+"/card.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = client.Get(context.Background(), server.URL+"/missing.png")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
