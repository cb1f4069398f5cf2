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
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start recitation: no audio device",
		},
		{
			name:     "resolution operation",
			op:       OpResolveAudio,
			err:      errors.New("network error"),
			expected: "Failed to resolve verse audio: network error",
		},
		{
			name:     "progress operation",
			op:       OpMarkRead,
			err:      errors.New("database is locked"),
			expected: "Failed to mark verse as read: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.op, tt.err)
			if got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("not found")

	got := FormatWith(OpResolveAudio, "2:255", err)
	want := "Failed to resolve verse audio '2:255': not found"
	if got != want {
		t.Errorf("FormatWith() = %q, want %q", got, want)
	}

	if FormatWith(OpResolveAudio, "", err) != Format(OpResolveAudio, err) {
		t.Error("FormatWith with empty context should fall back to Format")
	}

	if FormatWith(OpResolveAudio, "2:255", nil) != "" {
		t.Error("FormatWith with nil error should return empty string")
	}
}
