package session

import (
	"errors"
	"fmt"

	"smtpwiretool/internal/smtp/protocol"
)

var (
	// ErrCommandPending is returned when a command is issued while a prior
	// command's reply is still outstanding. This is a caller programming
	// error, not a protocol error; the session does not queue.
	ErrCommandPending = errors.New("smtp session: command already in flight")

	// ErrNotConnected is returned when a handshake is attempted before the
	// server greeting has been received.
	ErrNotConnected = errors.New("smtp session: not connected")

	// ErrClosed is returned when an operation is attempted after the
	// transport has been closed.
	ErrClosed = errors.New("smtp session: closed")

	// ErrNotImplemented is returned by verbs that are declared on the
	// command surface but deliberately carry no behavior.
	ErrNotImplemented = errors.New("smtp session: verb not implemented")
)

// ReplyError is a protocol rejection: the server replied, but with a code
// other than the one the issued verb expects. It carries the full reply so
// the caller can inspect the server's stated reason.
type ReplyError struct {
	Reply protocol.Reply
}

// Error implements the error interface.
func (e *ReplyError) Error() string {
	return fmt.Sprintf("smtp session: unexpected reply: %s", e.Reply.String())
}

// Temporary reports whether the rejection is a transient (4xx) failure.
func (e *ReplyError) Temporary() bool {
	return e.Reply.IsTemporaryError()
}
