package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/logging"
	"github.com/yourusername/danke/internal/models"
)

// socketPathFormat is where yabai listens for a given user
const socketPathFormat = "/tmp/yabai_%s.socket"

// DefaultTimeout of zero means requests block until yabai answers
const DefaultTimeout time.Duration = 0

var errEmptyWindowList = errors.New("empty response to window query")

// SocketPathForUser derives the yabai socket path from a user name
func SocketPathForUser(user string) (string, error) {
	if user == "" {
		return "", errs.New(errs.MissingIdentity, nil)
	}
	return fmt.Sprintf(socketPathFormat, user), nil
}

// Client issues yabai commands
type Client struct {
	conn *Connection
}

// NewClient creates a new yabai client for the socket at socketPath
func NewClient(socketPath string, timeout time.Duration) *Client {
	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// SocketPath returns the socket the client talks to
func (c *Client) SocketPath() string {
	return c.conn.SocketPath()
}

// Send issues one command. ok is false when yabai returned an empty response.
func (c *Client) Send(ctx context.Context, args ...string) (string, bool, error) {
	logging.Debug().Strs("args", args).Msg("yabai request")

	buf, err := c.conn.RoundTrip(ctx, args)
	if err != nil {
		return "", false, err
	}

	body, ok, err := DecodeResponse(buf)
	if err != nil {
		logging.Warn().Strs("args", args).Err(err).Msg("yabai rejected command")
		return "", false, err
	}

	logging.Debug().Strs("args", args).Int("bytes", len(buf)).Msg("yabai response")
	return body, ok, nil
}

// QueryWindows returns every window yabai knows about
func (c *Client) QueryWindows(ctx context.Context) ([]models.Window, error) {
	body, ok, err := c.Send(ctx, "query", "--windows")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.New(errs.DecodeError, errEmptyWindowList)
	}

	windows, err := models.ParseWindows([]byte(body))
	if err != nil {
		return nil, errs.New(errs.DecodeError, err)
	}
	return windows, nil
}

// Minimize minimizes the window with the given id
func (c *Client) Minimize(ctx context.Context, windowID uint32) error {
	_, _, err := c.Send(ctx, "window", "--minimize", formatID(windowID))
	return err
}

// Focus focuses the window with the given id, deminimizing it if needed
func (c *Client) Focus(ctx context.Context, windowID uint32) error {
	_, _, err := c.Send(ctx, "window", "--focus", formatID(windowID))
	return err
}

// ToggleFloat flips the floating state of the focused window
func (c *Client) ToggleFloat(ctx context.Context) error {
	_, _, err := c.Send(ctx, "window", "--toggle", "float")
	return err
}

func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
