package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"

	"smtpwiretool/internal/common/ratelimit"
	"smtpwiretool/internal/smtp/protocol"
)

// Session drives one SMTP client connection. It owns the read side of the
// transport through a protocol.Assembler and serializes commands against
// their replies: at most one command is in flight at any time, and each
// command awaits exactly the next assembled reply.
//
// A Session is safe for use from multiple goroutines, but issuing a second
// command while one is outstanding fails with ErrCommandPending rather
// than queueing.
type Session struct {
	config  *Config
	logger  *slog.Logger
	limiter *ratelimit.Limiter

	conn io.ReadWriteCloser

	replies chan *protocol.Reply
	done    chan struct{}

	mu        sync.Mutex
	waiting   bool
	greeted   bool
	esmtp     bool
	connected bool
	closed    bool
	banner    string
	caps      protocol.Capabilities
	readErr   error
}

// NewSession wraps an established transport. The caller remains
// responsible for any TLS negotiation; the session only reads and writes
// bytes. The session immediately starts consuming the read side; call
// Connect to await the server greeting.
func NewSession(conn io.ReadWriteCloser, config *Config) *Session {
	if config == nil {
		config = NewConfig()
	}
	s := &Session{
		config:  config,
		logger:  config.Logger,
		limiter: ratelimit.New(config.RateLimit),
		conn:    conn,
		replies: make(chan *protocol.Reply, 8),
		done:    make(chan struct{}),
	}
	go s.readLoop()
	return s
}

// Dial establishes a TCP connection to config.Host:config.Port, awaits the
// server greeting and returns the ready session.
func Dial(ctx context.Context, config *Config) (*Session, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	dialer := &net.Dialer{Timeout: config.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := NewSession(conn, config)
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// readLoop feeds transport bytes to the assembler and delivers completed
// replies in order. On read error the reply channel is closed so a pending
// await observes the error.
func (s *Session) readLoop() {
	var asm protocol.Assembler
	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			for _, reply := range asm.Feed(buf[:n]) {
				select {
				case s.replies <- reply:
				case <-s.done:
					return
				}
			}
		}
		if err != nil {
			s.mu.Lock()
			s.readErr = err
			s.mu.Unlock()
			close(s.replies)
			return
		}
	}
}

// Connect passively awaits the server greeting. On a 220 greeting the
// session records whether the server announced ESMTP; any other code
// rejects the connection and closes the transport. The ESMTP decision is
// made exactly once per connection.
func (s *Session) Connect(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	reply, err := s.awaitReply(ctx)
	if err != nil {
		s.Close()
		return err
	}
	s.logReply(reply)

	if reply.Code != 220 {
		s.Close()
		return &ReplyError{Reply: *reply}
	}

	s.mu.Lock()
	s.greeted = true
	s.esmtp = announcesESMTP(reply.Lines)
	if len(reply.Lines) > 0 {
		s.banner = reply.Lines[0]
	}
	s.mu.Unlock()
	return nil
}

// announcesESMTP reports whether any greeting line contains the ESMTP
// token, case-insensitively.
func announcesESMTP(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(strings.ToUpper(line), "ESMTP") {
			return true
		}
	}
	return false
}

// cmd writes one command line and awaits exactly the next reply, enforcing
// the single-command-in-flight discipline. A reply with a code other than
// want is returned alongside a *ReplyError.
//
// A failed await after the command line has been written is terminal: the
// server's reply for this command may still arrive later, and a subsequent
// command would otherwise consume it as its own. The transport is closed so
// every later operation fails with ErrClosed instead of correlating a
// stale reply.
func (s *Session) cmd(ctx context.Context, line string, want int) (*protocol.Reply, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	s.logCommand(line)
	if _, err := io.WriteString(s.conn, line); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to send command: %w", err)
	}

	reply, err := s.awaitReply(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.logReply(reply)

	if reply.Code != want {
		return reply, &ReplyError{Reply: *reply}
	}
	return reply, nil
}

// awaitReply delivers the next assembled reply, bounded by the caller's
// context and the configured ReplyTimeout.
func (s *Session) awaitReply(ctx context.Context) (*protocol.Reply, error) {
	if s.config.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ReplyTimeout)
		defer cancel()
	}

	select {
	case reply, ok := <-s.replies:
		if !ok {
			s.mu.Lock()
			err := s.readErr
			s.mu.Unlock()
			if err == nil {
				err = io.EOF
			}
			return nil, fmt.Errorf("transport error: %w", err)
		}
		return reply, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("awaiting SMTP reply: %w", ctx.Err())
	}
}

// begin claims the single in-flight command slot.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.waiting {
		return ErrCommandPending
	}
	s.waiting = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.waiting = false
	s.mu.Unlock()
}

// Close tears down the transport. The session is unusable afterwards;
// every subsequent operation returns ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.connected = false
	s.mu.Unlock()
	close(s.done)
	return s.conn.Close()
}

// Esmtp reports whether the server greeting announced ESMTP support.
func (s *Session) Esmtp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.esmtp
}

// Connected reports whether a handshake has completed successfully.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Banner returns the first line of the server greeting.
func (s *Session) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

// Capabilities returns the mapping advertised by the most recent
// successful handshake, or nil before one.
func (s *Session) Capabilities() protocol.Capabilities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps
}

func (s *Session) logCommand(line string) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("smtp command", "line", strings.TrimRight(line, "\r\n"))
}

func (s *Session) logReply(reply *protocol.Reply) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("smtp reply", "code", reply.Code, "message", reply.Message())
}
