package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doorTestServer(t *testing.T, calls *int32, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings/7/open-door", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"code":"CONFLICT","message":"booking is not approved"}`))
		} else {
			_, _ = w.Write([]byte(`{"status":"open"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestDoorUnlockAndRelock(t *testing.T) {
	var calls int32
	c := doorTestServer(t, &calls, http.StatusOK)

	d := c.Bookings.NewDoorUnlock(7, 30*time.Millisecond)
	defer d.Close()

	assert.False(t, d.Unlocked())
	require.NoError(t, d.Unlock(context.Background()))
	assert.True(t, d.Unlocked())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// The indicator relocks on its own without another request.
	assert.Eventually(t, func() bool { return !d.Unlocked() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoorUnlockRestartsCountdown(t *testing.T) {
	var calls int32
	c := doorTestServer(t, &calls, http.StatusOK)

	d := c.Bookings.NewDoorUnlock(7, 40*time.Millisecond)
	defer d.Close()

	require.NoError(t, d.Unlock(context.Background()))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, d.Unlock(context.Background()))
	time.Sleep(25 * time.Millisecond)

	// The first timer would have fired by now; the second unlock reset it.
	assert.True(t, d.Unlocked())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDoorUnlockFailureKeepsLocked(t *testing.T) {
	var calls int32
	c := doorTestServer(t, &calls, http.StatusConflict)

	d := c.Bookings.NewDoorUnlock(7, time.Minute)
	defer d.Close()

	err := d.Unlock(context.Background())
	require.Error(t, err)
	assert.False(t, d.Unlocked())

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestDoorUnlockClose(t *testing.T) {
	var calls int32
	c := doorTestServer(t, &calls, http.StatusOK)

	d := c.Bookings.NewDoorUnlock(7, time.Minute)
	require.NoError(t, d.Unlock(context.Background()))
	assert.True(t, d.Unlocked())

	d.Close()
	assert.False(t, d.Unlocked())

	// Unlock after Close still makes the call but leaves the tracker dead.
	require.NoError(t, d.Unlock(context.Background()))
	assert.False(t, d.Unlocked())
}

func TestDefaultRelockDelay(t *testing.T) {
	var calls int32
	c := doorTestServer(t, &calls, http.StatusOK)
	d := c.Bookings.NewDoorUnlock(7, 0)
	assert.Equal(t, DefaultRelockDelay, d.delay)
}
