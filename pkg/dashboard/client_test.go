package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

const testCookie = "textline.sid"

// fakeServer mimics the dashboard API closely enough for the client.
type fakeServer struct {
	mu        sync.Mutex
	snapshots [][]domain.Message
	frames    [][]domain.Event // frames to push on the n-th live connection

	snapshotCalls atomic.Int32
	wsCalls       atomic.Int32
	loggedIn      atomic.Bool
}

func (f *fakeServer) authed(c echo.Context) bool {
	cookie, err := c.Cookie(testCookie)
	return err == nil && cookie.Value == "valid" && f.loggedIn.Load()
}

func (f *fakeServer) start(t *testing.T) *httptest.Server {
	t.Helper()

	e := echo.New()
	upgrader := websocket.Upgrader{}

	e.POST("/api/login", func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil || req.Password != "secret" {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "error": "invalid credentials"})
		}
		f.loggedIn.Store(true)
		c.SetCookie(&http.Cookie{Name: testCookie, Value: "valid", Path: "/"})
		return c.JSON(http.StatusOK, map[string]any{"success": true, "username": req.Username})
	})

	e.GET("/api/messages", func(c echo.Context) error {
		if !f.authed(c) {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
		}
		n := int(f.snapshotCalls.Add(1)) - 1

		f.mu.Lock()
		defer f.mu.Unlock()
		if n >= len(f.snapshots) {
			n = len(f.snapshots) - 1
		}
		return c.JSON(http.StatusOK, f.snapshots[n])
	})

	e.GET("/api/settings/messaging-enabled", func(c echo.Context) error {
		if !f.authed(c) {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
		}
		return c.JSON(http.StatusOK, map[string]bool{"enabled": true})
	})

	e.GET("/ws", func(c echo.Context) error {
		if !f.authed(c) {
			return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
		}
		n := int(f.wsCalls.Add(1)) - 1

		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return nil
		}
		defer ws.Close()

		f.mu.Lock()
		var frames []domain.Event
		if n < len(f.frames) {
			frames = f.frames[n]
		}
		last := n >= len(f.frames)-1
		f.mu.Unlock()

		for _, frame := range frames {
			if err := ws.WriteJSON(frame); err != nil {
				return nil
			}
		}

		if !last {
			// drop the connection so the client has to resynchronise
			return nil
		}

		// hold the last connection open until the client goes away
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return nil
			}
		}
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseURL, password string) *Client {
	t.Helper()

	client, err := NewClient(Config{
		BaseURL:    baseURL,
		Username:   "dj",
		Password:   password,
		Timeout:    2 * time.Second,
		MinBackoff: 10 * time.Millisecond,
		MaxBackoff: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func waitForView(t *testing.T, views <-chan View, match func(View) bool) View {
	t.Helper()

	timeout := time.After(3 * time.Second)
	for {
		select {
		case v := <-views:
			if match(v) {
				return v
			}
		case <-timeout:
			t.Fatalf("timed out waiting for expected view")
		}
	}
}

func mustFrame(t *testing.T, eventType string, payload any) domain.Event {
	t.Helper()
	event, err := domain.NewEvent(eventType, payload)
	if err != nil {
		t.Fatalf("NewEvent returned error: %v", err)
	}
	return event
}

func TestLogin_BadPassword(t *testing.T) {
	f := &fakeServer{snapshots: [][]domain.Message{{}}}
	server := f.start(t)

	client := newTestClient(t, server.URL, "wrong")
	if err := client.Login(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSnapshot_FetchesMessagesAndFlag(t *testing.T) {
	f := &fakeServer{snapshots: [][]domain.Message{{{ID: 2}, {ID: 1}}}}
	server := f.start(t)

	client := newTestClient(t, server.URL, "secret")

	if _, err := client.Snapshot(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized before login, got %v", err)
	}

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	snapshot, err := client.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(snapshot.Messages) != 2 || !snapshot.MessagingEnabled {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestRun_AppliesLiveEvents(t *testing.T) {
	f := &fakeServer{
		snapshots: [][]domain.Message{{{ID: 1, Text: "old"}}},
	}
	f.frames = [][]domain.Event{{
		mustFrame(t, domain.EventMessageNew, domain.Message{ID: 2, Text: "new"}),
		mustFrame(t, domain.EventMessageUpdated, domain.Message{ID: 1, Text: "old", Read: true}),
		mustFrame(t, domain.EventSettingsUpdated, domain.SettingsUpdate{MessagingEnabled: false}),
	}}
	server := f.start(t)

	// Not logged in yet: Run logs in on the first 401.
	client := newTestClient(t, server.URL, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	views := make(chan View, 32)
	done := make(chan error, 1)
	go func() {
		done <- client.Run(ctx, func(v View) { views <- v })
	}()

	view := waitForView(t, views, func(v View) bool { return !v.MessagingEnabled })

	if len(view.Messages) != 2 || view.Messages[0].ID != 2 || view.Messages[1].ID != 1 {
		t.Fatalf("unexpected messages %+v", view.Messages)
	}
	if view.Unread != 1 {
		t.Fatalf("expected 1 unread, got %d", view.Unread)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_ResnapshotsAfterDrop(t *testing.T) {
	f := &fakeServer{
		snapshots: [][]domain.Message{
			{{ID: 1}},
			{{ID: 3}, {ID: 2}, {ID: 1}},
		},
		frames: [][]domain.Event{nil, nil},
	}
	f.loggedIn.Store(true)
	server := f.start(t)

	client := newTestClient(t, server.URL, "secret")
	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	views := make(chan View, 32)
	done := make(chan error, 1)
	go func() {
		done <- client.Run(ctx, func(v View) { views <- v })
	}()

	view := waitForView(t, views, func(v View) bool { return len(v.Messages) == 3 })
	if view.Messages[0].ID != 3 {
		t.Fatalf("expected second snapshot to replace state, got %+v", view.Messages)
	}
	if f.snapshotCalls.Load() < 2 {
		t.Fatalf("expected a snapshot per connection, got %d", f.snapshotCalls.Load())
	}

	cancel()
	<-done
}
