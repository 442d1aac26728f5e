package session

import (
	"context"

	"smtpwiretool/internal/smtp/protocol"
)

// Handshake performs EHLO when the greeting announced ESMTP, HELO
// otherwise. It must follow a successful Connect.
func (s *Session) Handshake(ctx context.Context) error {
	s.mu.Lock()
	greeted, esmtp := s.greeted, s.esmtp
	s.mu.Unlock()

	if !greeted {
		return ErrNotConnected
	}
	if esmtp {
		return s.Ehlo(ctx)
	}
	return s.Helo(ctx)
}

// Ehlo issues the extended greeting with the configured local name.
func (s *Session) Ehlo(ctx context.Context) error {
	return s.hello(ctx, protocol.EHLO(s.config.LocalName))
}

// Helo issues the legacy greeting with the configured local name.
func (s *Session) Helo(ctx context.Context) error {
	return s.hello(ctx, protocol.HELO(s.config.LocalName))
}

// hello issues a greeting command and, on 250, rebuilds the capability
// mapping from the reply. The fresh mapping replaces any previous one
// wholesale; nothing is merged.
func (s *Session) hello(ctx context.Context, line string) error {
	reply, err := s.cmd(ctx, line, 250)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.caps = protocol.ParseCapabilities(reply.Lines)
	s.connected = true
	s.mu.Unlock()
	return nil
}

// Mail issues MAIL FROM for the given sender address. The address is
// passed without angle brackets; they are added on the wire.
func (s *Session) Mail(ctx context.Context, address string) error {
	_, err := s.cmd(ctx, protocol.MAILFROM(address), 250)
	return err
}

// Rcpt issues RCPT TO for the given recipient address.
func (s *Session) Rcpt(ctx context.Context, address string) error {
	_, err := s.cmd(ctx, protocol.RCPTTO(address), 250)
	return err
}

// BeginData issues DATA and awaits the 354 go-ahead.
func (s *Session) BeginData(ctx context.Context) error {
	_, err := s.cmd(ctx, protocol.DATA(), 354)
	return err
}

// SendData writes raw message body bytes to the transport. No reply is
// exchanged per chunk; the write blocks until the transport has accepted
// the bytes, which is the only backpressure point of the session.
func (s *Session) SendData(p []byte) (int, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}
	return s.conn.Write(p)
}

// EndData terminates the message body with the dot line and awaits the
// server's 250 acceptance.
func (s *Session) EndData(ctx context.Context) error {
	_, err := s.cmd(ctx, protocol.EndOfData(), 250)
	return err
}

// Data sends a complete message body as one logical unit: DATA, the
// payload, then the terminator. The first failing stage is surfaced and
// all later stages are suppressed; in particular a refused DATA command
// writes no payload.
func (s *Session) Data(ctx context.Context, body []byte) error {
	if err := s.BeginData(ctx); err != nil {
		return err
	}
	if _, err := s.SendData(body); err != nil {
		return err
	}
	return s.EndData(ctx)
}

// Quit issues QUIT and, only on a 221 reply, closes the transport. On any
// other reply the transport stays open and the failure is reported.
func (s *Session) Quit(ctx context.Context) error {
	if _, err := s.cmd(ctx, protocol.QUIT(), 221); err != nil {
		return err
	}
	return s.Close()
}
