package protocol

import "strings"

// Identity fields shared by every beacon of the application
func ApplicationWidePrefix(app AppInfo) (prefix string) {
	writer := &fieldWriter{}
	writer.num(KeyProtocolVersion, int64(ProtocolVersion))
	writer.str(KeyAgentVersion, AgentVersion)
	writer.str(KeyApplicationID, app.ApplicationID)
	writer.str(KeyApplicationName, app.ApplicationName)
	if app.ApplicationVersion != "" {
		writer.str(KeyApplicationVersion, app.ApplicationVersion)
	}
	writer.num(KeyPlatformType, int64(PlatformType))
	writer.str(KeyAgentTechnologyType, AgentTechnologyType)
	writer.str(KeyVisitorID, app.DeviceID)
	writer.num(KeyDataCollectionLevel, int64(app.DataCollectionLevel))
	writer.num(KeyCrashReportingLevel, int64(app.CrashReportingLevel))

	// Optional device data
	if app.Manufacturer != "" {
		writer.str(KeyDeviceManufacturer, app.Manufacturer)
	}
	if app.ModelID != "" {
		writer.str(KeyDeviceModel, app.ModelID)
	}
	if app.ScreenWidth > 0 {
		writer.num(KeyScreenWidth, int64(app.ScreenWidth))
	}
	if app.ScreenHeight > 0 {
		writer.num(KeyScreenHeight, int64(app.ScreenHeight))
	}
	if app.UserLanguage != "" {
		writer.str(KeyUserLanguage, app.UserLanguage)
	}
	if app.OperatingSystem != "" {
		writer.str(KeyOperatingSystem, app.OperatingSystem)
	}

	prefix = writer.String()
	return
}

// Appends the per-session identity to the application prefix
func SessionPrefix(appPrefix string, sessionNumber int64, clientIP string, sessionStartTime int64) (prefix string) {
	writer := &fieldWriter{}
	writer.num(KeySessionNumber, sessionNumber)
	writer.str(KeyClientIPAddress, clientIP)
	writer.num(KeySessionStartTime, sessionStartTime)

	prefix = Combine(appPrefix, writer.String())
	return
}

// Fields recomputed for every beacon
func Mutable(multiplicity int, transmissionTime int64, supplementary Supplementary) (mutable string) {
	writer := &fieldWriter{}
	writer.num(KeyMultiplicity, int64(multiplicity))
	writer.num(KeyTransmissionTime, transmissionTime)
	if supplementary.Carrier != "" {
		writer.text(KeyCarrier, supplementary.Carrier)
	}
	if supplementary.NetworkTechnology != "" {
		writer.text(KeyNetworkTechnology, supplementary.NetworkTechnology)
	}
	if supplementary.ConnectionType != "" {
		writer.str(KeyConnectionType, string(supplementary.ConnectionType))
	}

	mutable = writer.String()
	return
}

// Joins non-empty payload parts with &
func Combine(parts ...string) (combined string) {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	combined = strings.Join(nonEmpty, string(fieldSeparator))
	return
}
