package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_ListProducts(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ProductPage{Products: fixtures[:2], Total: 194, Skip: 0, Limit: 2})
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL+"/", session.NewCredentials("token-1", "refresh-1"), time.Second)

	page, err := source.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, 194, page.Total)
	assert.Equal(t, []int64{1, 2}, ids(page.Products))
}

func TestHTTPSource_UsesCurrentToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	creds := session.NewCredentials("old", "")
	source := NewHTTPSource(server.URL, creds, time.Second)
	creds.SetTokens("new", "")

	_, err := source.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer new", gotAuth)
}

func TestHTTPSource_AnonymousRequest(t *testing.T) {
	var gotAuth = "unset"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, nil, time.Second).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, nil, time.Second).ListProducts(context.Background())
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestHTTPSource_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, nil, time.Second).ListProducts(context.Background())
	assert.ErrorContains(t, err, "decode products")
}

func TestHTTPSource_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, nil, time.Second)
	for i := 0; i < 8; i++ {
		_, err := source.ListProducts(context.Background())
		assert.Error(t, err)
	}

	assert.Equal(t, int32(5), hits.Load())
}

func TestHTTPSource_RefreshesExpiredToken(t *testing.T) {
	var refreshBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			var req refreshRequest
			json.NewDecoder(r.Body).Decode(&req)
			refreshBody = req.RefreshToken
			w.Write([]byte(`{"accessToken":"fresh","refreshToken":"r2"}`))
		case "/products":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"products":[{"id":1,"title":"Ashwagandha Capsules"}],"total":1}`))
		}
	}))
	defer server.Close()

	creds := session.NewCredentials("expired", "r1")
	page, err := NewHTTPSource(server.URL, creds, time.Second).ListProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(page.Products))
	assert.Equal(t, "r1", refreshBody)
	assert.Equal(t, "fresh", creds.AccessToken())
	assert.Equal(t, "r2", creds.RefreshToken())
}

func TestHTTPSource_UnauthorizedWithoutRefreshToken(t *testing.T) {
	var refreshed atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			refreshed.Store(true)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, session.NewCredentials("expired", ""), time.Second).ListProducts(context.Background())

	assert.ErrorContains(t, err, "unexpected status 401")
	assert.False(t, refreshed.Load())
}

func TestHTTPSource_RefreshRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := session.NewCredentials("expired", "r1")
	_, err := NewHTTPSource(server.URL, creds, time.Second).ListProducts(context.Background())

	assert.ErrorContains(t, err, "refresh token: unexpected status 403")
	assert.Equal(t, "expired", creds.AccessToken())
}
