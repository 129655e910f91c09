package commstate

import (
	"fmt"
	"rumbeacon/internal/global"
)

// Creates state with collector defaults: all capture on, unlocked
func New() (state *State) {
	state = &State{
		serverID:       global.DefaultServerID,
		multiplicity:   global.DefaultMultiplicity,
		maxBeaconSize:  global.DefaultMaxBeaconSize,
		capture:        CaptureOn,
		captureErrors:  CaptureOn,
		captureCrashes: CaptureOn,
	}
	return
}

// Overwrites every field present in a valid response.
// Invalid responses are ignored wholesale. Server id is kept while locked.
func (state *State) ApplyStatusResponse(resp StatusResponse) {
	if !resp.Valid {
		return
	}

	if resp.ServerID != nil && !state.serverIDLocked {
		state.serverID = *resp.ServerID
	}
	if resp.MaxBeaconSizeKB != nil {
		state.maxBeaconSize = *resp.MaxBeaconSizeKB * 1024
	}
	if resp.Multiplicity != nil {
		state.multiplicity = *resp.Multiplicity
	}
	if resp.Capture != nil {
		state.capture = *resp.Capture
	}
	if resp.CaptureErrors != nil {
		state.captureErrors = *resp.CaptureErrors
	}
	if resp.CaptureCrashes != nil {
		state.captureCrashes = *resp.CaptureCrashes
	}
}

// Copies server id (unless locked), multiplicity and beacon size from other
func (state *State) MergeFrom(other *State) {
	if other == nil {
		return
	}
	if !state.serverIDLocked {
		state.serverID = other.serverID
	}
	state.multiplicity = other.multiplicity
	state.maxBeaconSize = other.maxBeaconSize
}

// Freezes the server id for the lifetime of this state
func (state *State) LockServerID() {
	state.serverIDLocked = true
}

// Independent copy with the lock cleared
func (state *State) Clone() (clone *State) {
	copied := *state
	copied.serverIDLocked = false
	clone = &copied
	return
}

// Halts reporting by zeroing multiplicity
func (state *State) StopCommunication() {
	state.multiplicity = 0
}

func (state *State) ServerID() int              { return state.serverID }
func (state *State) Multiplicity() int          { return state.multiplicity }
func (state *State) MaxBeaconSize() int         { return state.maxBeaconSize }
func (state *State) Capture() CaptureMode       { return state.capture }
func (state *State) CaptureErrors() CaptureMode { return state.captureErrors }
func (state *State) CaptureCrashes() CaptureMode { return state.captureCrashes }
func (state *State) ServerIDLocked() bool        { return state.serverIDLocked }

// Reports whether the collector told this state to stop sending
func (state *State) IsCommunicationStopped() (stopped bool) {
	stopped = state.multiplicity == 0
	return
}

func (state *State) String() (text string) {
	text = fmt.Sprintf("srvid=%d locked=%v mp=%d bl=%dB cp=%s er=%s cr=%s",
		state.serverID, state.serverIDLocked, state.multiplicity, state.maxBeaconSize,
		state.capture, state.captureErrors, state.captureCrashes)
	return
}
