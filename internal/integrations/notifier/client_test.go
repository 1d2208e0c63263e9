package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/pkg/logger"
)

func TestNotify_SignsAndDelivers(t *testing.T) {
	var (
		gotBody      []byte
		gotSignature string
		gotEvent     string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Signature")
		gotEvent = r.Header.Get("X-Event-Type")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := NewClient(server.URL, "s3cret", time.Second, logger.NewNop())
	err := c.Notify(context.Background(), "b-1", Summary{
		CompanyRef:  "company-1",
		Services:    []string{"Visual Inspection"},
		PlanKind:    "exact",
		FirstDate:   "2026-11-03",
		TimeSlot:    "10:00",
		Occurrences: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, EventBookingCreated, gotEvent)
	assert.True(t, Verify("s3cret", gotBody, gotSignature))

	var payload envelope
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "b-1", payload.Booking.BookingID)
	assert.Equal(t, "10:00", payload.Booking.TimeSlot)
}

func TestNotify_NoSecretNoSignature(t *testing.T) {
	var signed bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, signed = r.Header["X-Signature"]
	}))
	defer server.Close()

	c := NewClient(server.URL, "", time.Second, logger.NewNop())
	require.NoError(t, c.Notify(context.Background(), "b-1", Summary{}))
	assert.False(t, signed)
}

func TestNotify_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, "s3cret", time.Second, logger.NewNop())
	err := c.Notify(context.Background(), "b-1", Summary{})
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.Contains(t, err.Error(), "502")
}

func TestNotify_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(url, "", 200*time.Millisecond, logger.NewNop())
	err := c.Notify(context.Background(), "b-1", Summary{})
	assert.ErrorIs(t, err, ErrNotificationFailed)
}

func TestVerify_RejectsTampering(t *testing.T) {
	body := []byte(`{"event":"booking.created"}`)
	sig := Sign("key", body)

	assert.True(t, Verify("key", body, sig))
	assert.False(t, Verify("other", body, sig))
	assert.False(t, Verify("key", []byte(`{}`), sig))
	assert.False(t, Verify("key", body, "not-hex"))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Notify(context.Background(), "b-1", Summary{}))
}
