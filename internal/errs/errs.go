package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a terminal failure. Each kind maps to one exit code.
type Kind int

const (
	// Unknown is any error that did not originate from danke itself (flag parsing and the like)
	Unknown Kind = iota
	MissingIdentity
	ConnectFailed
	WriteFailed
	ReadFailed
	RemoteError
	DecodeError
	StateRead
	StateWrite
	Usage
	Config
)

// Exit codes follow sysexits.h
const (
	ExitUsage    = 64 // EX_USAGE
	ExitNoInput  = 66 // EX_NOINPUT
	ExitNoHost   = 68 // EX_NOHOST
	ExitIOErr    = 74 // EX_IOERR
	ExitProtocol = 76 // EX_PROTOCOL
	ExitNoPerm   = 77 // EX_NOPERM
	ExitConfig   = 78 // EX_CONFIG
)

// String returns a short name for the kind, used in log fields
func (k Kind) String() string {
	switch k {
	case MissingIdentity:
		return "missing_identity"
	case ConnectFailed:
		return "connect_failed"
	case WriteFailed:
		return "write_failed"
	case ReadFailed:
		return "read_failed"
	case RemoteError:
		return "remote_error"
	case DecodeError:
		return "decode_error"
	case StateRead:
		return "state_read"
	case StateWrite:
		return "state_write"
	case Usage:
		return "usage"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Remote holds the message yabai sent back
// and is only set for RemoteError.
type Error struct {
	Kind   Kind
	Remote string
	Err    error
}

// New creates an error of the given kind wrapping cause (which may be nil)
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// NewRemote creates a RemoteError carrying the window manager's message verbatim
func NewRemote(msg string) *Error {
	return &Error{Kind: RemoteError, Remote: msg}
}

// Configf creates a Config error with a formatted cause
func Configf(format string, args ...interface{}) *Error {
	return &Error{Kind: Config, Err: fmt.Errorf(format, args...)}
}

// Usagef creates a Usage error with a formatted cause
func Usagef(format string, args ...interface{}) *Error {
	return &Error{Kind: Usage, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.Err)
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the single human-readable line shown to the user
func (e *Error) Message() string {
	switch e.Kind {
	case MissingIdentity:
		return "Missing `$USER` env var"
	case ConnectFailed:
		return "Failed to connect to yabai socket `/tmp/yabai_$USER.socket`"
	case WriteFailed:
		return "Failed to write to yabai socket"
	case ReadFailed:
		return "Failed to read from yabai socket"
	case RemoteError:
		return "Yabai command failed: `" + e.Remote + "'"
	case DecodeError:
		return "Failed to deserialize json"
	case StateRead:
		return "Failed to read `$HOME/.danke.json`"
	case StateWrite:
		return "Failed to write `$HOME/.danke.json`"
	case Usage:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "Invalid usage"
	case Config:
		if e.Err != nil {
			return "Invalid config: " + e.Err.Error()
		}
		return "Invalid config"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "Unknown error"
	}
}

// ExitCode returns the process exit code for the error
func (e *Error) ExitCode() int {
	switch e.Kind {
	case StateRead:
		return ExitNoInput
	case ConnectFailed:
		return ExitNoHost
	case ReadFailed, WriteFailed, RemoteError:
		return ExitIOErr
	case DecodeError:
		return ExitProtocol
	case StateWrite:
		return ExitNoPerm
	case MissingIdentity, Config:
		return ExitConfig
	case Usage:
		return ExitUsage
	default:
		return 1
	}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Report returns the user-facing line and exit code for any error
func Report(err error) (string, int) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message(), e.ExitCode()
	}
	return err.Error(), 1
}
