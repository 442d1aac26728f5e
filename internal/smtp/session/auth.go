package session

import (
	"github.com/emersion/go-sasl"
)

// The verbs below are declared for command-surface completeness but carry
// no behavior: nothing is written to the transport and no reply is
// awaited. Each returns ErrNotImplemented.

// Auth is the hook for SMTP authentication. Mechanism bodies (PLAIN,
// LOGIN, CRAM-MD5; see sasl.NewPlainClient and friends) are outside this
// engine.
func (s *Session) Auth(mech sasl.Client) error {
	return ErrNotImplemented
}

// Rset would abort the current mail transaction.
func (s *Session) Rset() error {
	return ErrNotImplemented
}

// Vrfy would check whether a mailbox exists.
func (s *Session) Vrfy(address string) error {
	return ErrNotImplemented
}

// Expn would expand a mailing list.
func (s *Session) Expn(list string) error {
	return ErrNotImplemented
}

// Help would request server help information.
func (s *Session) Help() error {
	return ErrNotImplemented
}

// Noop would exercise the connection without side effects.
func (s *Session) Noop() error {
	return ErrNotImplemented
}
