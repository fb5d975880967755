package client

import (
	"context"
	"sync"
	"time"
)

// DefaultRelockDelay is how long the UI shows the door as unlocked after a
// successful open-door call. The lock itself re-engages on its own; the
// relock here is purely presentational and makes no network call.
const DefaultRelockDelay = 10 * time.Second

// DoorUnlock tracks the unlocked/locked indicator for one booking's door.
type DoorUnlock struct {
	bookings  *BookingsService
	bookingID uint64
	delay     time.Duration

	mu       sync.Mutex
	unlocked bool
	timer    *time.Timer
	closed   bool
}

// NewDoorUnlock builds the unlock tracker for a booking. A non-positive
// delay uses DefaultRelockDelay.
func (s *BookingsService) NewDoorUnlock(bookingID uint64, delay time.Duration) *DoorUnlock {
	if delay <= 0 {
		delay = DefaultRelockDelay
	}
	return &DoorUnlock{bookings: s, bookingID: bookingID, delay: delay}
}

// Unlock relays the open-door request and, on success, flips the indicator
// to unlocked and schedules the automatic relock. Calling Unlock again
// restarts the countdown.
func (d *DoorUnlock) Unlock(ctx context.Context) error {
	if err := d.bookings.OpenDoor(ctx, d.bookingID); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.unlocked = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.relock)
	return nil
}

func (d *DoorUnlock) relock() {
	d.mu.Lock()
	d.unlocked = false
	d.mu.Unlock()
}

// Unlocked reports the current indicator state.
func (d *DoorUnlock) Unlocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unlocked
}

// Close cancels any pending relock timer. The tracker is dead afterwards.
func (d *DoorUnlock) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.unlocked = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
