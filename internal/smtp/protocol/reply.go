package protocol

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Reply represents one complete SMTP server reply.
// A reply consists of a 3-digit code and one or more lines of text.
// Multi-line replies (hyphen after the code on all but the last line,
// RFC 5321 §4.2) are collected into a single Reply.
type Reply struct {
	Code  int      // 3-digit reply code (e.g., 220, 250, 354)
	Lines []string // individual lines with code and separator stripped
}

// Message returns the reply text with lines joined by newlines.
func (r *Reply) Message() string {
	return strings.Join(r.Lines, "\n")
}

// IsSuccess checks if the reply code indicates success (2xx).
func (r *Reply) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}

// IsIntermediate checks if the reply code is a positive intermediate (3xx),
// such as 354 after DATA.
func (r *Reply) IsIntermediate() bool {
	return r.Code >= 300 && r.Code < 400
}

// IsTemporaryError checks if the reply code indicates a temporary failure (4xx).
// These errors can be retried.
func (r *Reply) IsTemporaryError() bool {
	return r.Code >= 400 && r.Code < 500
}

// IsPermanentError checks if the reply code indicates a permanent failure (5xx).
// These errors should not be retried.
func (r *Reply) IsPermanentError() bool {
	return r.Code >= 500 && r.Code < 600
}

// CodeClass returns the reply code class (2, 3, 4, or 5).
func (r *Reply) CodeClass() int {
	return r.Code / 100
}

// String returns a human-readable representation of the reply.
func (r *Reply) String() string {
	if len(r.Lines) == 1 {
		return fmt.Sprintf("%d %s", r.Code, r.Lines[0])
	}
	return fmt.Sprintf("%d (multiline, %d lines)", r.Code, len(r.Lines))
}

var crlf = []byte("\r\n")

// Assembler converts an arbitrarily fragmented byte stream into complete
// SMTP replies. A chunk fed to it may split a line mid-way, contain several
// lines, or contain several complete replies; the assembler retains any
// unterminated suffix and prepends it to the next chunk.
//
// Malformed lines (non-numeric code prefix, or a continuation line whose
// code differs from the reply's established code) are tolerated: their text
// is included best-effort in the current reply rather than aborting the
// stream. A reply is only ever emitted once its final line (space after the
// code) has been seen.
//
// The zero value is ready to use. An Assembler is not safe for concurrent
// use; it is owned by a single reader.
type Assembler struct {
	pending []byte
	code    int
	lines   []string
}

// Feed consumes a chunk of bytes and returns the replies completed by it,
// in the order their lines were received. It returns nil when no reply
// completed.
func (a *Assembler) Feed(p []byte) []*Reply {
	data := append(a.pending, p...)

	var replies []*Reply
	for {
		i := bytes.Index(data, crlf)
		if i < 0 {
			break
		}
		line := string(data[:i])
		data = data[i+len(crlf):]

		if r := a.line(line); r != nil {
			replies = append(replies, r)
		}
	}

	a.pending = append([]byte(nil), data...)
	return replies
}

// line folds one complete line into the reply under assembly and returns
// the reply if the line finished it.
func (a *Assembler) line(line string) *Reply {
	code, last, text, ok := splitReplyLine(line)
	if !ok {
		// No parseable code prefix. Keep the raw text so the caller can
		// still see what the server said.
		a.lines = append(a.lines, text)
		return nil
	}

	if a.code == 0 {
		a.code = code
	}
	// A continuation code differing from a.code is a protocol violation;
	// the line is still included under the established code.
	a.lines = append(a.lines, text)

	if !last {
		return nil
	}
	r := &Reply{Code: a.code, Lines: a.lines}
	a.code = 0
	a.lines = nil
	return r
}

// splitReplyLine parses a reply line of the form "DDD<sep>text" where DDD
// is exactly 3 decimal digits and <sep> is '-' for a continuation line or a
// space (or end of line) for the final line. ok is false when the line has
// no valid code prefix; a line with a valid code but an unexpected
// separator is treated as a continuation with the remainder as text.
func splitReplyLine(line string) (code int, last bool, text string, ok bool) {
	if len(line) < 3 {
		return 0, false, line, false
	}
	code, err := strconv.Atoi(line[:3])
	if err != nil || code < 100 {
		return 0, false, line, false
	}
	if len(line) == 3 {
		return code, true, "", true
	}
	switch line[3] {
	case ' ':
		return code, true, line[4:], true
	case '-':
		return code, false, line[4:], true
	default:
		return code, false, line[3:], true
	}
}
