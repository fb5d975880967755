// Package iot talks to the external door controller over HTTP. The controller
// authenticates callers with a shared private key header. All calls are
// best-effort from the booking flow's point of view; failures are logged and
// surfaced but never abort a booking.
package iot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const headerPrivateKey = "x-private-key"

// Client relays door-session commands to the controller. With an empty
// BaseURL the client runs in local mode: sessions get a locally generated
// UUID and open-door requests succeed without any network traffic, which
// keeps development setups working without door hardware.
type Client struct {
	BaseURL    string
	PrivateKey string
	HTTP       *http.Client
}

func NewClient(baseURL, privateKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		PrivateKey: privateKey,
		HTTP:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Local reports whether the client operates without a real controller.
func (c *Client) Local() bool { return c.BaseURL == "" }

type sessionReq struct {
	BookingID uint64 `json:"booking_id"`
	SpaceID   uint64 `json:"space_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type sessionResp struct {
	SessionID string `json:"session_id"`
}

// CreateSession registers a door session for a booking and returns the
// controller-issued session id. In local mode a UUID is returned instead.
func (c *Client) CreateSession(ctx context.Context, bookingID, spaceID uint64, date, start, end string) (string, error) {
	if c.Local() {
		return uuid.NewString(), nil
	}
	body := sessionReq{BookingID: bookingID, SpaceID: spaceID, Date: date, StartTime: start, EndTime: end}
	var out sessionResp
	if err := c.do(ctx, http.MethodPost, "/sessions", body, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("iot: controller returned empty session id")
	}
	return out.SessionID, nil
}

// DeleteSession revokes a door session. Unknown sessions are treated as
// already gone.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if c.Local() || sessionID == "" {
		return nil
	}
	err := c.do(ctx, http.MethodDelete, "/sessions/"+sessionID, nil, nil)
	if err != nil {
		log.Printf("iot: delete session %s failed: %v", sessionID, err)
	}
	return err
}

// OpenDoor asks the controller to unlock the door for an active session.
func (c *Client) OpenDoor(ctx context.Context, sessionID string) error {
	if c.Local() {
		return nil
	}
	if sessionID == "" {
		return fmt.Errorf("iot: no session id")
	}
	return c.do(ctx, http.MethodPost, "/sessions/"+sessionID+"/open", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var rd io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerPrivateKey, c.PrivateKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("iot: %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(bs)))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
