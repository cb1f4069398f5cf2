//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/cache",
			expected: filepath.Join(home, "cache"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/cache/sakina",
			expected: "/var/cache/sakina",
		},
		{
			name:     "relative path unchanged",
			input:    "cache/audio",
			expected: "cache/audio",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetPlaybackConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	pb := cfg.GetPlaybackConfig()

	if pb.SpeedMin != 0.5 {
		t.Errorf("SpeedMin = %v, want 0.5", pb.SpeedMin)
	}
	if pb.SpeedMax != 2.0 {
		t.Errorf("SpeedMax = %v, want 2.0", pb.SpeedMax)
	}
	if pb.ResolveTimeout() != 15*time.Second {
		t.Errorf("ResolveTimeout() = %v, want 15s", pb.ResolveTimeout())
	}
	if pb.Continuous == nil || !*pb.Continuous {
		t.Error("Continuous should default to true")
	}
}

func TestGetPlaybackConfig_InvertedSpeedRange(t *testing.T) {
	cfg := &Config{Playback: PlaybackConfig{SpeedMin: 1.5, SpeedMax: 1.0}}
	pb := cfg.GetPlaybackConfig()

	if pb.SpeedMax <= pb.SpeedMin {
		t.Errorf("SpeedMax %v should exceed SpeedMin %v after defaulting", pb.SpeedMax, pb.SpeedMin)
	}
}

func TestGetPlaybackConfig_ExplicitValues(t *testing.T) {
	disabled := false
	cfg := &Config{Playback: PlaybackConfig{
		Continuous:            &disabled,
		SpeedMin:              0.75,
		SpeedMax:              1.5,
		ResolveTimeoutSeconds: 30,
	}}
	pb := cfg.GetPlaybackConfig()

	if *pb.Continuous {
		t.Error("explicit continuous=false should be preserved")
	}
	if pb.SpeedMin != 0.75 || pb.SpeedMax != 1.5 {
		t.Errorf("speed range = [%v, %v], want [0.75, 1.5]", pb.SpeedMin, pb.SpeedMax)
	}
	if pb.ResolveTimeout() != 30*time.Second {
		t.Errorf("ResolveTimeout() = %v, want 30s", pb.ResolveTimeout())
	}
}

func TestDwellThreshold(t *testing.T) {
	cfg := &Config{}
	if got := cfg.DwellThreshold(); got != 3*time.Second {
		t.Errorf("default DwellThreshold() = %v, want 3s", got)
	}

	cfg.Reading.DwellThresholdSeconds = 1.5
	if got := cfg.DwellThreshold(); got != 1500*time.Millisecond {
		t.Errorf("DwellThreshold() = %v, want 1.5s", got)
	}
}
