package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/layer-3/tokenasset/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/trade_nft/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"nft_id":"A"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL + "/")
	resp, err := client.Do(context.Background(), http.MethodPost, "/api/trade_nft/", "tok", []byte(`{"nft_id":"A"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestHTTPClient_NoBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	}))
	defer server.Close()

	resp, err := NewHTTPClient(server.URL).Do(context.Background(), http.MethodPost, "/api/login/", "", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.False(t, resp.OK())
}

func TestHTTPClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(url, WithTimeout(time.Second)).Do(context.Background(), http.MethodGet, "/api/wallet/", "tok", nil)
	assert.Error(t, err)
}

func TestHTTPClient_ResponseTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":"` + strings.Repeat("x", 64) + `"}`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL, WithMaxBodySize(16)).Do(context.Background(), http.MethodGet, "/api/list_assets/", "tok", nil)
	assert.ErrorIs(t, err, core.ErrResponseTooLarge)

	resp, err := NewHTTPClient(server.URL, WithMaxBodySize(1024)).Do(context.Background(), http.MethodGet, "/api/list_assets/", "tok", nil)
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), "xxxx")
}
