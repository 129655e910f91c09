package commstate

import (
	"rumbeacon/internal/global"
	"rumbeacon/pkg/protocol"
	"strconv"
)

// Pointer helper for building responses by hand
func Ptr[T any](value T) (ptr *T) {
	ptr = &value
	return
}

// Decodes a key-value monitor response.
// A body whose type is not "m" produces an invalid response.
func ParseKeyValueResponse(body string) (resp StatusResponse) {
	entries := protocol.ParseEntries(body)
	if entries[protocol.ResponseKeyType] != protocol.ResponseTypeMonitor {
		return
	}
	resp.Valid = true

	for key, value := range entries {
		switch key {
		case protocol.ResponseKeyCapture:
			resp.Capture = Ptr(SanitizeCaptureFlag(value, false))
		case protocol.ResponseKeyCaptureErrors:
			resp.CaptureErrors = Ptr(SanitizeCaptureFlag(value, true))
		case protocol.ResponseKeyCaptureCrashes:
			resp.CaptureCrashes = Ptr(SanitizeCaptureFlag(value, true))
		case protocol.ResponseKeyMaxBeaconSize:
			resp.MaxBeaconSizeKB = Ptr(parseNonNegative(value, 0))
		case protocol.ResponseKeyMultiplicity:
			resp.Multiplicity = Ptr(parseNonNegative(value, 0))
		case protocol.ResponseKeyServerID:
			resp.ServerID = Ptr(parseNonNegative(value, global.DefaultServerID))
		}
	}
	return
}

// Folds an old-format numeric flag into On/Off.
// "1" is on; "2" (WiFi only) is also on where wifiOnlyAllowed; anything else is off.
func SanitizeCaptureFlag(value string, wifiOnlyAllowed bool) (mode CaptureMode) {
	switch {
	case value == "1":
		mode = CaptureOn
	case value == "2" && wifiOnlyAllowed:
		mode = CaptureOn
	default:
		mode = CaptureOff
	}
	return
}

func parseNonNegative(value string, fallback int) (number int) {
	number, err := strconv.Atoi(value)
	if err != nil || number < 0 {
		number = fallback
	}
	return
}
