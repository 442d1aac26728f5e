package protocol

import (
	"fmt"
	"strings"
)

// SMTP command builders following RFC 5321.
// All commands include the CRLF line terminator required by the protocol.
//
// Command arguments are sanitized to remove CRLF sequences that could be
// used for command injection. Callers are expected to pass trusted input;
// the sanitization is an additional layer of protection.

// sanitizeCRLF removes carriage return and line feed characters from input
// strings to prevent SMTP command injection.
func sanitizeCRLF(input string) string {
	input = strings.ReplaceAll(input, "\r", "")
	input = strings.ReplaceAll(input, "\n", "")
	return input
}

// EHLO builds an Extended SMTP greeting with the specified hostname.
// Example: EHLO client.example.com
func EHLO(hostname string) string {
	return fmt.Sprintf("EHLO %s\r\n", sanitizeCRLF(hostname))
}

// HELO builds a standard SMTP greeting (legacy, used when the server does
// not announce ESMTP support).
func HELO(hostname string) string {
	return fmt.Sprintf("HELO %s\r\n", sanitizeCRLF(hostname))
}

// MAILFROM builds the MAIL command specifying the sender address.
// The address should NOT include angle brackets - they're added here.
// Example: MAIL FROM: <sender@example.com>
func MAILFROM(address string) string {
	return fmt.Sprintf("MAIL FROM: <%s>\r\n", sanitizeCRLF(address))
}

// RCPTTO builds the RCPT command specifying a recipient address.
// The address should NOT include angle brackets - they're added here.
// Example: RCPT TO: <recipient@example.com>
func RCPTTO(address string) string {
	return fmt.Sprintf("RCPT TO: <%s>\r\n", sanitizeCRLF(address))
}

// DATA builds the DATA command beginning message transmission.
// The server answers 354, after which the body is sent followed by
// EndOfData.
func DATA() string {
	return "DATA\r\n"
}

// EndOfData builds the message terminator: a line consisting solely of a
// dot. The leading CRLF closes the last body line, the trailing CRLF is the
// generic line framing.
func EndOfData() string {
	return "\r\n.\r\n"
}

// QUIT builds the QUIT command terminating the SMTP session.
// The server answers 221 and closes the connection.
func QUIT() string {
	return "QUIT\r\n"
}

// AUTH builds an authentication command with the specified mechanism.
// If initialResponse is non-empty it is included in the command line
// (e.g., for PLAIN).
func AUTH(mechanism string, initialResponse string) string {
	if initialResponse != "" {
		return fmt.Sprintf("AUTH %s %s\r\n", sanitizeCRLF(mechanism), sanitizeCRLF(initialResponse))
	}
	return fmt.Sprintf("AUTH %s\r\n", sanitizeCRLF(mechanism))
}

// RSET builds the RESET command aborting the current mail transaction.
func RSET() string {
	return "RSET\r\n"
}

// NOOP builds a no-operation command (used for connection keep-alive).
func NOOP() string {
	return "NOOP\r\n"
}

// VRFY builds the VERIFY command checking whether a mailbox exists.
// Many servers disable this for privacy reasons.
func VRFY(address string) string {
	return fmt.Sprintf("VRFY %s\r\n", sanitizeCRLF(address))
}

// EXPN builds the EXPAND command expanding a mailing list.
// Many servers disable this for privacy reasons.
func EXPN(mailingList string) string {
	return fmt.Sprintf("EXPN %s\r\n", sanitizeCRLF(mailingList))
}

// HELP builds the HELP command requesting server help information.
func HELP() string {
	return "HELP\r\n"
}
