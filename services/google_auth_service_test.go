package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGoogleAuth(ts *httptest.Server, clientID string) *GoogleAuthService {
	return &GoogleAuthService{
		clientID: clientID,
		baseURL:  ts.URL,
		client:   ts.Client(),
	}
}

func TestVerifyIDTokenReturnsClaims(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "some-token", r.URL.Query().Get("id_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sub": "10987654321",
			"email": "jordan@example.com",
			"name": "Jordan",
			"picture": "https://example.com/p.jpg",
			"aud": "web-client-id"
		}`))
	}))
	defer ts.Close()

	claims, err := newTestGoogleAuth(ts, "web-client-id").VerifyIDToken(context.Background(), "some-token")
	require.NoError(t, err)
	require.Equal(t, "jordan@example.com", claims.Email)
	require.Equal(t, "Jordan", claims.Name)
	require.Equal(t, "10987654321", claims.Sub)
}

func TestVerifyIDTokenRejectsAudienceMismatch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sub":"1","email":"a@b.c","aud":"someone-else"}`))
	}))
	defer ts.Close()

	_, err := newTestGoogleAuth(ts, "web-client-id").VerifyIDToken(context.Background(), "t")
	require.Error(t, err)
	require.Contains(t, err.Error(), "audience")
}

func TestVerifyIDTokenRejectsUpstreamFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer ts.Close()

	_, err := newTestGoogleAuth(ts, "web-client-id").VerifyIDToken(context.Background(), "expired")
	require.Error(t, err)
}

func TestVerifyIDTokenRejectsMissingEmail(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sub":"1","aud":"web-client-id"}`))
	}))
	defer ts.Close()

	_, err := newTestGoogleAuth(ts, "web-client-id").VerifyIDToken(context.Background(), "t")
	require.Error(t, err)
}
