//go:build !integration
// +build !integration

package protocol

import (
	"strings"
	"testing"
)

func TestCommandBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"EHLO", EHLO("client.example.com"), "EHLO client.example.com\r\n"},
		{"HELO", HELO("client.example.com"), "HELO client.example.com\r\n"},
		{"MAILFROM", MAILFROM("user@example.com"), "MAIL FROM: <user@example.com>\r\n"},
		{"RCPTTO", RCPTTO("dest@example.com"), "RCPT TO: <dest@example.com>\r\n"},
		{"DATA", DATA(), "DATA\r\n"},
		{"EndOfData", EndOfData(), "\r\n.\r\n"},
		{"QUIT", QUIT(), "QUIT\r\n"},
		{"RSET", RSET(), "RSET\r\n"},
		{"NOOP", NOOP(), "NOOP\r\n"},
		{"HELP", HELP(), "HELP\r\n"},
		{"VRFY", VRFY("user@example.com"), "VRFY user@example.com\r\n"},
		{"EXPN", EXPN("staff"), "EXPN staff\r\n"},
		{"AUTH without initial response", AUTH("LOGIN", ""), "AUTH LOGIN\r\n"},
		{"AUTH with initial response", AUTH("PLAIN", "AGpvaG4AcGFzcw=="), "AUTH PLAIN AGpvaG4AcGFzcw==\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// Injection attempts must not be able to smuggle extra command lines.
func TestCommandBuildersSanitizeCRLF(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "MAILFROM strips injected command",
			got:  MAILFROM("user@example.com>\r\nRCPT TO: <evil@example.com"),
			want: "MAIL FROM: <user@example.com>RCPT TO: <evil@example.com>\r\n",
		},
		{
			name: "EHLO strips bare newline",
			got:  EHLO("host\nQUIT"),
			want: "EHLO hostQUIT\r\n",
		},
		{
			name: "VRFY strips carriage return",
			got:  VRFY("user\rname"),
			want: "VRFY username\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
			if strings.Count(tt.got, "\r\n") != 1 {
				t.Errorf("command contains more than one line terminator: %q", tt.got)
			}
		})
	}
}
