package commstate

import (
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	state := New()

	if state.ServerID() != 1 {
		t.Fatalf("default server id = %d, want 1", state.ServerID())
	}
	if state.Multiplicity() != 1 {
		t.Fatalf("default multiplicity = %d, want 1", state.Multiplicity())
	}
	if state.MaxBeaconSize() != 30720 {
		t.Fatalf("default max beacon size = %d, want 30720", state.MaxBeaconSize())
	}
	if state.Capture() != CaptureOn || state.CaptureErrors() != CaptureOn || state.CaptureCrashes() != CaptureOn {
		t.Fatalf("expected all capture flags on, got %s", state)
	}
	if state.ServerIDLocked() {
		t.Fatalf("new state must not be locked")
	}
	if state.IsCommunicationStopped() {
		t.Fatalf("new state must not be stopped")
	}
}

func TestApplyStatusResponse(t *testing.T) {
	tests := []struct {
		name              string
		responses         []StatusResponse
		wantServerID      int
		wantMultiplicity  int
		wantMaxBeaconSize int
		wantCapture       CaptureMode
	}{
		{
			name:              "updates server id",
			responses:         []StatusResponse{{Valid: true, ServerID: Ptr(7)}},
			wantServerID:      7,
			wantMultiplicity:  1,
			wantMaxBeaconSize: 30720,
			wantCapture:       CaptureOn,
		},
		{
			name:              "max beacon size multiplied by 1024",
			responses:         []StatusResponse{{Valid: true, MaxBeaconSizeKB: Ptr(10)}},
			wantServerID:      1,
			wantMultiplicity:  1,
			wantMaxBeaconSize: 10240,
			wantCapture:       CaptureOn,
		},
		{
			name:              "updates multiplicity",
			responses:         []StatusResponse{{Valid: true, Multiplicity: Ptr(7)}},
			wantServerID:      1,
			wantMultiplicity:  7,
			wantMaxBeaconSize: 30720,
			wantCapture:       CaptureOn,
		},
		{
			name:              "updates capture",
			responses:         []StatusResponse{{Valid: true, Capture: Ptr(CaptureOff)}},
			wantServerID:      1,
			wantMultiplicity:  1,
			wantMaxBeaconSize: 30720,
			wantCapture:       CaptureOff,
		},
		{
			name: "invalid response ignored wholesale",
			responses: []StatusResponse{
				{Valid: true, ServerID: Ptr(5), MaxBeaconSizeKB: Ptr(5), Multiplicity: Ptr(5)},
				{Valid: false, ServerID: Ptr(1), MaxBeaconSizeKB: Ptr(1), Multiplicity: Ptr(1), Capture: Ptr(CaptureOff)},
			},
			wantServerID:      5,
			wantMultiplicity:  5,
			wantMaxBeaconSize: 5120,
			wantCapture:       CaptureOn,
		},
		{
			name:              "absent fields untouched",
			responses:         []StatusResponse{{Valid: true}},
			wantServerID:      1,
			wantMultiplicity:  1,
			wantMaxBeaconSize: 30720,
			wantCapture:       CaptureOn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := New()
			for _, resp := range tt.responses {
				state.ApplyStatusResponse(resp)
			}

			if state.ServerID() != tt.wantServerID {
				t.Fatalf("server id = %d, want %d", state.ServerID(), tt.wantServerID)
			}
			if state.Multiplicity() != tt.wantMultiplicity {
				t.Fatalf("multiplicity = %d, want %d", state.Multiplicity(), tt.wantMultiplicity)
			}
			if state.MaxBeaconSize() != tt.wantMaxBeaconSize {
				t.Fatalf("max beacon size = %d, want %d", state.MaxBeaconSize(), tt.wantMaxBeaconSize)
			}
			if state.Capture() != tt.wantCapture {
				t.Fatalf("capture = %s, want %s", state.Capture(), tt.wantCapture)
			}
		})
	}
}

func TestMergeFrom(t *testing.T) {
	tests := []struct {
		name         string
		lock         bool
		wantServerID int
	}{
		{name: "copies server id when unlocked", lock: false, wantServerID: 8},
		{name: "keeps server id when locked", lock: true, wantServerID: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := New()
			state.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(4), Multiplicity: Ptr(4), MaxBeaconSizeKB: Ptr(4)})
			if tt.lock {
				state.LockServerID()
			}

			other := New()
			other.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(8), Multiplicity: Ptr(8), MaxBeaconSizeKB: Ptr(8),
				Capture: Ptr(CaptureOff)})

			state.MergeFrom(other)

			if state.ServerID() != tt.wantServerID {
				t.Fatalf("server id = %d, want %d", state.ServerID(), tt.wantServerID)
			}
			if state.Multiplicity() != 8 {
				t.Fatalf("multiplicity = %d, want 8", state.Multiplicity())
			}
			if state.MaxBeaconSize() != 8*1024 {
				t.Fatalf("max beacon size = %d, want %d", state.MaxBeaconSize(), 8*1024)
			}
			// Capture flags are not part of a merge
			if state.Capture() != CaptureOn {
				t.Fatalf("capture changed by merge")
			}
		})
	}

	// nil source is a no-op
	state := New()
	state.MergeFrom(nil)
	if state.ServerID() != 1 {
		t.Fatalf("nil merge changed state")
	}
}

func TestLockServerID(t *testing.T) {
	state := New()
	state.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(4)})
	state.LockServerID()
	state.LockServerID()

	updates := []StatusResponse{
		{Valid: true, ServerID: Ptr(7)},
		{Valid: true, ServerID: Ptr(9), Multiplicity: Ptr(3)},
		{Valid: false, ServerID: Ptr(11)},
	}
	for _, resp := range updates {
		state.ApplyStatusResponse(resp)
		other := New()
		other.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(13)})
		state.MergeFrom(other)

		if state.ServerID() != 4 {
			t.Fatalf("locked server id changed to %d", state.ServerID())
		}
	}
	if !state.ServerIDLocked() {
		t.Fatalf("lock flag cleared")
	}
}

func TestClone(t *testing.T) {
	state := New()
	state.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(5), Multiplicity: Ptr(5), MaxBeaconSizeKB: Ptr(5),
		CaptureErrors: Ptr(CaptureOff)})
	state.LockServerID()

	clone := state.Clone()
	if clone.ServerID() != 5 || clone.Multiplicity() != 5 || clone.MaxBeaconSize() != 5120 {
		t.Fatalf("clone values differ: %s", clone)
	}
	if clone.CaptureErrors() != CaptureOff || clone.Capture() != CaptureOn || clone.CaptureCrashes() != CaptureOn {
		t.Fatalf("clone capture flags differ: %s", clone)
	}
	if clone.ServerIDLocked() {
		t.Fatalf("clone carried the server id lock")
	}

	clone.ApplyStatusResponse(StatusResponse{Valid: true, ServerID: Ptr(7), Multiplicity: Ptr(0)})
	if clone.ServerID() != 7 {
		t.Fatalf("clone server id = %d, want 7", clone.ServerID())
	}
	if state.ServerID() != 5 || state.Multiplicity() != 5 {
		t.Fatalf("mutating clone changed original: %s", state)
	}
}

func TestStopCommunication(t *testing.T) {
	state := New()
	state.StopCommunication()

	if state.Multiplicity() != 0 {
		t.Fatalf("multiplicity = %d, want 0", state.Multiplicity())
	}
	if !state.IsCommunicationStopped() {
		t.Fatalf("expected stopped communication")
	}
}
