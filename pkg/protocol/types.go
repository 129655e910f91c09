package protocol

// Encoded key-value fragment, immutable once built
type Record string

// Byte length of the encoded record
func (record Record) Size() (size int) {
	size = len(record)
	return
}

// Application identity written once into every beacon.
// Empty strings and zero screen dimensions are omitted from the prefix.
type AppInfo struct {
	ApplicationID       string
	ApplicationName     string
	ApplicationVersion  string
	DeviceID            string
	OperatingSystem     string
	Manufacturer        string
	ModelID             string
	UserLanguage        string
	ScreenWidth         int
	ScreenHeight        int
	DataCollectionLevel int
	CrashReportingLevel int
}

type ConnectionType string

const (
	ConnectionMobile  ConnectionType = "m"
	ConnectionWifi    ConnectionType = "w"
	ConnectionOffline ConnectionType = "o"
	ConnectionLan     ConnectionType = "l"
)

// Optional network data attached to the mutable prefix
type Supplementary struct {
	Carrier           string
	NetworkTechnology string
	ConnectionType    ConnectionType
}
