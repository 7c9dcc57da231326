package client

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"

	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/logging"
)

// failureByte prefixes a response that carries an error message
const failureByte = 0x07

// Connection performs one request/response exchange per call against the
// yabai Unix domain socket. yabai closes its end after every response, so
// no connection is kept between calls.
type Connection struct {
	socketPath string
	timeout    time.Duration
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// SocketPath returns the path the connection dials
func (c *Connection) SocketPath() string {
	return c.socketPath
}

// EncodeMessage frames args for yabai: a little-endian uint32 payload length,
// then every argument followed by a NUL, then one trailing NUL.
func EncodeMessage(args []string) []byte {
	size := 1
	for _, arg := range args {
		size += len(arg) + 1
	}

	buf := make([]byte, 4, 4+size)
	binary.LittleEndian.PutUint32(buf, uint32(size))
	for _, arg := range args {
		buf = append(buf, arg...)
		buf = append(buf, 0)
	}
	buf = append(buf, 0)

	return buf
}

// DecodeResponse classifies a complete response buffer. ok is false when
// yabai sent nothing back.
func DecodeResponse(buf []byte) (body string, ok bool, err error) {
	if len(buf) == 0 {
		return "", false, nil
	}

	if buf[0] == failureByte {
		return "", false, errs.NewRemote(lossyString(buf[1:]))
	}

	return lossyString(buf), true, nil
}

// RoundTrip sends one framed command and reads the response until EOF
func (c *Connection) RoundTrip(ctx context.Context, args []string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		logging.Debug().
			Str("socket", c.socketPath).
			Str("reason", dialFailureReason(err)).
			Err(err).
			Msg("dial failed")
		return nil, errs.New(errs.ConnectFailed, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, errs.New(errs.WriteFailed, err)
		}
	}

	if _, err := conn.Write(EncodeMessage(args)); err != nil {
		return nil, errs.New(errs.WriteFailed, err)
	}

	buf, err := io.ReadAll(conn)
	if err != nil {
		return nil, errs.New(errs.ReadFailed, err)
	}

	return buf, nil
}

// dialFailureReason names the usual causes of a failed dial for the log
func dialFailureReason(err error) string {
	switch {
	case errors.Is(err, unix.ENOENT):
		return "socket missing, is yabai running?"
	case errors.Is(err, unix.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, unix.EACCES):
		return "permission denied"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return "other"
	}
}

// lossyString decodes b as UTF-8, replacing every maximal invalid
// subsequence with one U+FFFD
func lossyString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}

		sb.WriteRune(utf8.RuneError)
		b = b[invalidPrefixLen(b):]
	}

	return sb.String()
}

// invalidPrefixLen returns how many bytes of the invalid sequence at the
// start of b belong together: a lead byte and the continuation bytes that
// could still have completed it.
func invalidPrefixLen(b []byte) int {
	var need int
	lo, hi := byte(0x80), byte(0xBF)

	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 2
	case c == 0xE0:
		need, lo = 3, 0xA0
	case c == 0xED:
		need, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 3
	case c == 0xF0:
		need, lo = 4, 0x90
	case c == 0xF4:
		need, hi = 4, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 4
	default:
		return 1
	}

	n := 1
	for n < need && n < len(b) {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
		n++
	}
	return n
}
