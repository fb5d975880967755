package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEnvelopeDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"CONFLICT","message":"space already booked for this time slot"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Bookings.Create(context.Background(), CreateBookingRequest{SpaceID: 1})
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Contains(t, apiErr.Message, "already booked")
}

func TestUnauthorizedFiresOncePerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"invalid or expired token"}`))
	}))
	defer srv.Close()

	var fired int32
	c := New(srv.URL,
		WithToken("expired-token"),
		OnUnauthorized(func() { atomic.AddInt32(&fired, 1) }),
	)

	_, err := c.Auth.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Empty(t, c.Token(), "rejected token must be cleared")

	// Further calls without a token are plain 401s, no second callback.
	_, err = c.Auth.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// A fresh token arms a fresh notification.
	c.SetToken("expired-again")
	_, err = c.Auth.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestLoginFailureDoesNotFireUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"INVALID_CREDENTIALS","message":"invalid email or password"}`))
	}))
	defer srv.Close()

	var fired int32
	c := New(srv.URL, OnUnauthorized(func() { atomic.AddInt32(&fired, 1) }))

	_, err := c.Auth.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&fired))
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "fresh-token", User: User{ID: 1}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Auth.Login(context.Background(), "jane@example.com", "correct")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)
	assert.Equal(t, "fresh-token", c.Token())
}

func TestEmptyParamsOmitted(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"meta":{"total":0,"limit":20,"offset":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Spaces.List(context.Background(), SpaceFilter{Building: "Library", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "building=Library&limit=20", gotQuery)
}

func TestBearerHeaderSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("abc123"))
	_, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NoError(t, c.Ratings.Delete(context.Background(), 4))
}

func TestRawBytesResponse(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL)
	bs, err := c.Bookings.QR(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, payload, bs)
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Auth.Me(context.Background())
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Code)
}
