//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamPlay,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpStreamPlay,
			err:      errors.New("autoplay blocked"),
			expected: "Failed to play the stream: autoplay blocked",
		},
		{
			name:     "status operation",
			op:       OpStatusFetch,
			err:      errors.New("unexpected status: 503 Service Unavailable"),
			expected: "Failed to load radio status: unexpected status: 503 Service Unavailable",
		},
		{
			name:     "persistence operation",
			op:       OpVolumeSave,
			err:      errors.New("database is locked"),
			expected: "Failed to save volume: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpStreamConnect,
			context:  "https://radio.example/listen",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpStreamConnect,
			context:  "",
			err:      errors.New("timeout"),
			expected: "Failed to connect to the stream: timeout",
		},
		{
			name:     "includes context",
			op:       OpStreamConnect,
			context:  "https://radio.example/listen",
			err:      errors.New("connection refused"),
			expected: "Failed to connect to the stream 'https://radio.example/listen': connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
