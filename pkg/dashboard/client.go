package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

type Config struct {
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// Snapshot is one consistent-enough read of the dashboard's state.
type Snapshot struct {
	Messages         []domain.Message
	MessagingEnabled bool
}

type Client struct {
	httpClient *resty.Client
	dialer     *websocket.Dialer
	wsURL      string
	config     Config
	state      *State
}

func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.MinBackoff {
		cfg.MaxBackoff = 30 * time.Second
	}

	// Login, snapshot and the live channel share one cookie jar.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(cfg.Timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json")

	wsURL := *base
	switch base.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}
	wsURL.Path += "/ws"

	return &Client{
		httpClient: httpClient,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.Timeout,
			Jar:              jar,
		},
		wsURL:  wsURL.String(),
		config: cfg,
		state:  NewState(),
	}, nil
}

func (c *Client) State() *State {
	return c.state
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and keeps the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: c.config.Username, Password: c.config.Password}).
		Post("/api/login")
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	default:
		return fmt.Errorf("login failed with status %d", resp.StatusCode())
	}
}

type enabledResponse struct {
	Enabled bool `json:"enabled"`
}

// Snapshot fetches recent messages and the messaging toggle concurrently.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var messages []domain.Message
		if err := c.get(gctx, "/api/messages", &messages); err != nil {
			return err
		}
		snapshot.Messages = messages
		return nil
	})

	g.Go(func() error {
		var enabled enabledResponse
		if err := c.get(gctx, "/api/settings/messaging-enabled", &enabled); err != nil {
			return err
		}
		snapshot.MessagingEnabled = enabled.Enabled
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	default:
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode())
	}
}

// Run keeps the state current until ctx is done. Every (re)connection starts
// with a fresh snapshot; events missed while disconnected are not replayed.
// onChange, when set, is called with a copy of the state after every change.
func (c *Client) Run(ctx context.Context, onChange func(View)) error {
	backoff := c.config.MinBackoff
	relogged := false

	for {
		err := c.session(ctx, onChange)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			if relogged {
				return err
			}
			logger.Warnf("Dashboard session rejected, logging in again")
			if err := c.Login(ctx); err != nil {
				return err
			}
			relogged = true
			continue
		}

		if err == nil {
			// The channel had been open, so the session was good
			relogged = false
			backoff = c.config.MinBackoff
		} else {
			logger.Warnf("Live channel lost: %v (retrying in %v)", err, backoff)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		if err != nil {
			backoff *= 2
			if backoff > c.config.MaxBackoff {
				backoff = c.config.MaxBackoff
			}
		}
	}
}

// session runs one snapshot and stream cycle. It returns nil when a stream
// that had been open drops.
func (c *Client) session(ctx context.Context, onChange func(View)) error {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return err
	}

	c.state.Reset(snapshot.Messages, snapshot.MessagingEnabled)
	notify(c.state, onChange)

	ws, resp, err := c.dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("failed to open live channel: %w", err)
	}
	defer ws.Close()

	// Unblock ReadJSON when the caller gives up
	stop := context.AfterFunc(ctx, func() { _ = ws.Close() })
	defer stop()

	logger.Infof("Live channel open (%d messages in snapshot)", len(snapshot.Messages))

	for {
		var event domain.Event
		if err := ws.ReadJSON(&event); err != nil {
			logger.Debugf("Live channel read ended: %v", err)
			return nil
		}

		if err := c.state.Apply(event); err != nil {
			logger.Warnf("Dropping malformed %s event: %v", event.Type, err)
			continue
		}
		notify(c.state, onChange)
	}
}

func notify(state *State, onChange func(View)) {
	if onChange != nil {
		onChange(state.View())
	}
}
