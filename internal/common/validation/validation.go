// Package validation holds input checks shared by session configuration.
package validation

import (
	"fmt"
	"net"
	"strings"
)

// ValidateHostname validates a hostname or IP address.
// Accepts DNS names, IPv4 addresses, and IPv6 addresses.
func ValidateHostname(hostname string) error {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return fmt.Errorf("hostname cannot be empty")
	}

	if net.ParseIP(hostname) != nil {
		return nil
	}

	if len(hostname) > 253 {
		return fmt.Errorf("hostname too long (max 253 characters)")
	}

	for _, ch := range hostname {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '.' || ch == '-') {
			return fmt.Errorf("hostname contains invalid character: %c", ch)
		}
	}

	if strings.HasPrefix(hostname, "-") || strings.HasSuffix(hostname, "-") ||
		strings.HasPrefix(hostname, ".") || strings.HasSuffix(hostname, ".") {
		return fmt.Errorf("hostname cannot start or end with hyphen or dot")
	}

	return nil
}

// ValidatePort validates that a port number is in the valid range (1-65535).
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 (got %d)", port)
	}
	return nil
}
