//go:build !integration
// +build !integration

package protocol

import (
	"reflect"
	"testing"
)

func TestParseCapabilities(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Capabilities
	}{
		{
			name:  "Typical EHLO reply",
			lines: []string{"mail.example.com", "SIZE 10485760", "8BITMIME"},
			want:  Capabilities{"SIZE": "10485760", "8BITMIME": ""},
		},
		{
			name: "Parameter remainder rejoined with single spaces",
			lines: []string{
				"smtp.example.com Hello",
				"AUTH PLAIN  LOGIN   CRAM-MD5",
				"STARTTLS",
			},
			want: Capabilities{"AUTH": "PLAIN LOGIN CRAM-MD5", "STARTTLS": ""},
		},
		{
			name:  "Greeting only",
			lines: []string{"mail.example.com ready"},
			want:  Capabilities{},
		},
		{
			name:  "Keyword case preserved",
			lines: []string{"greeting", "8bitMime"},
			want:  Capabilities{"8bitMime": ""},
		},
		{
			name:  "Blank capability line skipped",
			lines: []string{"greeting", "", "HELP"},
			want:  Capabilities{"HELP": ""},
		},
		{
			name:  "No lines",
			lines: nil,
			want:  Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCapabilities(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCapabilities() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapabilitiesHasAndParam(t *testing.T) {
	caps := ParseCapabilities([]string{"greeting", "SIZE 10485760", "8bitMime"})

	if !caps.Has("SIZE") {
		t.Error("Has(SIZE) = false, want true")
	}
	if !caps.Has("size") {
		t.Error("Has(size) should match case-insensitively")
	}
	if !caps.Has("8BITMIME") {
		t.Error("Has(8BITMIME) should match case-insensitively")
	}
	if caps.Has("STARTTLS") {
		t.Error("Has(STARTTLS) = true, want false")
	}

	if param, ok := caps.Param("size"); !ok || param != "10485760" {
		t.Errorf("Param(size) = %q, %v; want %q, true", param, ok, "10485760")
	}
	if param, ok := caps.Param("8bitmime"); !ok || param != "" {
		t.Errorf("Param(8bitmime) = %q, %v; want %q, true", param, ok, "")
	}
	if _, ok := caps.Param("PIPELINING"); ok {
		t.Error("Param(PIPELINING) reported present")
	}
}

func TestCapabilitiesAuthMechanisms(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "Mechanisms listed",
			lines: []string{"greeting", "AUTH PLAIN LOGIN CRAM-MD5"},
			want:  []string{"PLAIN", "LOGIN", "CRAM-MD5"},
		},
		{
			name:  "AUTH absent",
			lines: []string{"greeting", "SIZE 1000"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCapabilities(tt.lines).AuthMechanisms()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AuthMechanisms() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapabilitiesMaxMessageSize(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int64
	}{
		{"Size advertised", []string{"greeting", "SIZE 35882577"}, 35882577},
		{"Size flag only", []string{"greeting", "SIZE"}, 0},
		{"Size not numeric", []string{"greeting", "SIZE lots"}, 0},
		{"Size absent", []string{"greeting", "8BITMIME"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCapabilities(tt.lines).MaxMessageSize(); got != tt.want {
				t.Errorf("MaxMessageSize() = %d, want %d", got, tt.want)
			}
		})
	}
}
