package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateLoading, "Loading"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateErrored, "Errored"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	if !StatePlaying.IsActive() || !StateLoading.IsActive() {
		t.Error("Playing and Loading should be active")
	}
	if StateIdle.IsActive() || StatePaused.IsActive() || StateErrored.IsActive() {
		t.Error("Idle, Paused and Errored should not be active")
	}
}

func TestSnapshot_Progress(t *testing.T) {
	snap := Snapshot{Elapsed: 45, Status: statusWith("a", "A", "T", 45, 180)}
	if got := snap.Progress(); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}
	if got := (Snapshot{Elapsed: 10}).Progress(); got != 0 {
		t.Errorf("Progress() without status = %v, want 0", got)
	}
	if got := (Snapshot{}).Duration(); got != 0 {
		t.Errorf("Duration() without status = %v, want 0", got)
	}
}
