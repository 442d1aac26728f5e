package protocol

import (
	"strconv"
	"strings"
)

// Capabilities represents the ESMTP extensions a server advertised in its
// HELO/EHLO reply. The map key is the capability keyword exactly as
// received; the value is the parameter remainder of the line, or the empty
// string for flag-only capabilities.
//
// Example EHLO reply:
//
//	250-smtp.example.com Hello
//	250-AUTH PLAIN LOGIN CRAM-MD5
//	250-SIZE 35882577
//	250 8BITMIME
//
// Would be parsed as:
//
//	{
//	  "AUTH":     "PLAIN LOGIN CRAM-MD5",
//	  "SIZE":     "35882577",
//	  "8BITMIME": "",
//	}
type Capabilities map[string]string

// ParseCapabilities parses HELO/EHLO reply lines into a Capabilities map.
// The first line carries the server greeting and is skipped. Each remaining
// line is split on the first space: the first token is the keyword, any
// remaining tokens are rejoined with single spaces as the parameter.
func ParseCapabilities(lines []string) Capabilities {
	caps := make(Capabilities)

	for i, line := range lines {
		if i == 0 {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		caps[parts[0]] = strings.Join(parts[1:], " ")
	}

	return caps
}

// Has checks if a specific capability is supported.
// Keyword comparison is case-insensitive.
func (c Capabilities) Has(capability string) bool {
	_, ok := c.lookup(capability)
	return ok
}

// Param retrieves the parameter string for a specific capability. The
// second return value reports whether the capability is present at all; a
// present flag-only capability yields ("", true).
func (c Capabilities) Param(capability string) (string, bool) {
	return c.lookup(capability)
}

// lookup finds a capability by case-insensitive keyword match. Keys are
// stored as received, so an exact hit is tried before scanning.
func (c Capabilities) lookup(capability string) (string, bool) {
	if param, ok := c[capability]; ok {
		return param, true
	}
	for key, param := range c {
		if strings.EqualFold(key, capability) {
			return param, true
		}
	}
	return "", false
}

// AuthMechanisms extracts the supported authentication mechanisms from the
// AUTH capability, e.g. ["PLAIN", "LOGIN", "CRAM-MD5"]. Returns nil when
// the server did not advertise AUTH.
func (c Capabilities) AuthMechanisms() []string {
	param, ok := c.lookup("AUTH")
	if !ok {
		return nil
	}
	return strings.Fields(param)
}

// MaxMessageSize extracts the maximum message size from the SIZE
// capability. Returns 0 if SIZE is absent or carries no valid parameter.
func (c Capabilities) MaxMessageSize() int64 {
	param, ok := c.lookup("SIZE")
	if !ok {
		return 0
	}
	fields := strings.Fields(param)
	if len(fields) == 0 {
		return 0
	}
	size, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return size
}

// String returns a formatted string representation of all capabilities.
func (c Capabilities) String() string {
	var result []string
	for name, param := range c {
		if param != "" {
			result = append(result, name+": "+param)
		} else {
			result = append(result, name)
		}
	}
	return strings.Join(result, "; ")
}
