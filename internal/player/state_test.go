package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	if Stopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !Playing.IsActive() {
		t.Error("Playing should be active")
	}
	if !Paused.IsActive() {
		t.Error("Paused should be active")
	}
}

func TestMock_Transitions(t *testing.T) {
	m := NewMock()

	// Pause while stopped is a no-op
	m.Pause()
	if m.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", m.State())
	}

	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if m.State() != Playing {
		t.Errorf("State() = %v, want Playing", m.State())
	}

	m.Pause()
	if m.State() != Paused {
		t.Errorf("State() = %v, want Paused", m.State())
	}

	// Resume only from Paused
	m.Resume()
	if m.State() != Playing {
		t.Errorf("State() = %v, want Playing", m.State())
	}

	m.Stop()
	if m.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", m.State())
	}
}
