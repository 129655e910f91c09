package commstate

// On/Off gate for a category of captured data
type CaptureMode int

const (
	CaptureOff CaptureMode = iota
	CaptureOn
)

func (mode CaptureMode) String() (text string) {
	if mode == CaptureOn {
		text = "On"
	} else {
		text = "Off"
	}
	return
}

// Parameters negotiated with the collector.
// Not safe for concurrent use; the owning session serializes access.
type State struct {
	serverID       int
	multiplicity   int
	maxBeaconSize  int // bytes
	capture        CaptureMode
	captureErrors  CaptureMode
	captureCrashes CaptureMode
	serverIDLocked bool
}

// Decoded status response. Nil fields were not present in the response.
type StatusResponse struct {
	Valid           bool
	ServerID        *int
	MaxBeaconSizeKB *int
	Multiplicity    *int
	Capture         *CaptureMode
	CaptureErrors   *CaptureMode
	CaptureCrashes  *CaptureMode
}
