package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/internal/hub"
	"github.com/onurcolak/listener-text-service/internal/session"
)

type liveFixture struct {
	server  *httptest.Server
	hub     *hub.Hub
	manager *session.Manager
	wsURL   string
}

func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()

	manager := session.NewManager(session.NewMemoryStore(), environments.SessionConfig{
		TTL:        time.Hour,
		CookieName: "textline.sid",
	}, false)
	h := hub.NewHub(8)

	handler := NewRealtimeHandler(h, manager, environments.RealtimeConfig{
		PingInterval:   time.Second,
		WriteTimeout:   time.Second,
		ReadTimeout:    5 * time.Second,
		MaxMessageSize: 1024,
	}, "http://localhost:3000")

	e := echo.New()
	e.GET("/ws", handler.Connect)

	server := httptest.NewServer(e)
	t.Cleanup(func() {
		h.Close()
		server.Close()
	})

	return &liveFixture{
		server:  server,
		hub:     h,
		manager: manager,
		wsURL:   "ws" + strings.TrimPrefix(server.URL, "http") + "/ws",
	}
}

func (f *liveFixture) dial(t *testing.T, sess *domain.Session) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	header := http.Header{}
	if sess != nil {
		cookie := &http.Cookie{Name: f.manager.CookieName(), Value: sess.ID}
		header.Set("Cookie", cookie.String())
	}
	return websocket.DefaultDialer.Dial(f.wsURL, header)
}

func (f *liveFixture) login(t *testing.T) *domain.Session {
	t.Helper()

	sess, err := f.manager.Create(context.Background(), "dj")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return sess
}

func (f *liveFixture) waitForConnections(t *testing.T, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for f.hub.ConnectionCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d live connections, have %d", n, f.hub.ConnectionCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, ws *websocket.Conn) domain.Event {
	t.Helper()

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event domain.Event
	if err := ws.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	return event
}

func TestConnect_UnauthenticatedIsRejected(t *testing.T) {
	f := newLiveFixture(t)

	ws, resp, err := f.dial(t, nil)
	if err == nil {
		ws.Close()
		t.Fatalf("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}

	unknown := &domain.Session{ID: "not-a-session", ExpiresAt: time.Now().Add(time.Hour)}
	if _, resp, err = f.dial(t, unknown); err == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown session, got %v", err)
	}
}

func TestConnect_BroadcastReachesConnectedDashboardsOnly(t *testing.T) {
	f := newLiveFixture(t)

	first, _, err := f.dial(t, f.login(t))
	if err != nil {
		t.Fatalf("first dial failed: %v", err)
	}
	defer first.Close()

	second, _, err := f.dial(t, f.login(t))
	if err != nil {
		t.Fatalf("second dial failed: %v", err)
	}
	defer second.Close()

	third, _, err := f.dial(t, f.login(t))
	if err != nil {
		t.Fatalf("third dial failed: %v", err)
	}
	f.waitForConnections(t, 3)
	third.Close()
	f.waitForConnections(t, 2)

	msg := domain.Message{ID: 1, Phone: "+19015550123", Text: "hi"}
	if err := f.hub.Broadcast(domain.EventMessageNew, msg); err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}

	for _, ws := range []*websocket.Conn{first, second} {
		event := readFrame(t, ws)
		if event.Type != domain.EventMessageNew {
			t.Fatalf("expected %s, got %s", domain.EventMessageNew, event.Type)
		}

		var got domain.Message
		if err := json.Unmarshal(event.Data, &got); err != nil {
			t.Fatalf("failed to unmarshal payload: %v", err)
		}
		if got.ID != msg.ID || got.Text != msg.Text {
			t.Fatalf("unexpected payload %+v", got)
		}
	}
}

func TestConnect_SettingsToggleDoesNotOpenTheChannel(t *testing.T) {
	f := newLiveFixture(t)

	ws, _, err := f.dial(t, f.login(t))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer ws.Close()
	f.waitForConnections(t, 1)

	if err := f.hub.Broadcast(domain.EventSettingsUpdated, domain.SettingsUpdate{MessagingEnabled: false}); err != nil {
		t.Fatalf("Broadcast returned error: %v", err)
	}

	event := readFrame(t, ws)
	if event.Type != domain.EventSettingsUpdated || string(event.Data) != `{"messagingEnabled":false}` {
		t.Fatalf("unexpected frame %s %s", event.Type, event.Data)
	}

	if _, resp, err := f.dial(t, nil); err == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthenticated dial to stay rejected, got %v", err)
	}
}

func TestConnect_CloseSessionDropsConnection(t *testing.T) {
	f := newLiveFixture(t)
	sess := f.login(t)

	ws, _, err := f.dial(t, sess)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer ws.Close()
	f.waitForConnections(t, 1)

	f.hub.CloseSession(sess.ID)

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = ws.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close, got %v", err)
	}
}
