package protocol

const (
	ProtocolVersion     int    = 3
	AgentVersion        string = "0.3.0"
	PlatformType        int    = 1
	AgentTechnologyType string = "okjs"

	// Every record is reported on a single logical thread
	ThreadID int = 1

	// Maximum characters kept from any caller supplied string
	MaxStringLength int = 250

	// Prefix of web request tags, followed by the protocol version
	webRequestTagPrefix string = "MT"

	fieldSeparator byte = '&'
	pairSeparator  byte = '='
)

// Event type codes carried in the et field
const (
	EventTypeManualAction  int = 1
	EventTypeNamedEvent    int = 10
	EventTypeValueString   int = 11
	EventTypeValueInt      int = 12
	EventTypeValueDouble   int = 13
	EventTypeSessionStart  int = 18
	EventTypeSessionEnd    int = 19
	EventTypeWebRequest    int = 30
	EventTypeError         int = 40
	EventTypeCrash         int = 50
	EventTypeIdentifyUser  int = 60
	EventTypeCustomPayload int = 98
)

// Beacon payload keys
const (
	// Application wide prefix
	KeyProtocolVersion     = "vv"
	KeyAgentVersion        = "va"
	KeyApplicationID       = "ap"
	KeyApplicationName     = "an"
	KeyApplicationVersion  = "vn"
	KeyPlatformType        = "pt"
	KeyAgentTechnologyType = "tt"
	KeyVisitorID           = "vi"
	KeyDataCollectionLevel = "dl"
	KeyCrashReportingLevel = "cl"
	KeyDeviceManufacturer  = "mf"
	KeyDeviceModel         = "md"
	KeyScreenWidth         = "w"
	KeyScreenHeight        = "h"
	KeyUserLanguage        = "ul"
	KeyOperatingSystem     = "os"

	// Session prefix
	KeySessionNumber    = "sn"
	KeyClientIPAddress  = "ip"
	KeySessionStartTime = "tv"

	// Mutable prefix
	KeyMultiplicity      = "mp"
	KeyTransmissionTime  = "tx"
	KeyCarrier           = "cr"
	KeyNetworkTechnology = "np"
	KeyConnectionType    = "ct"

	// Record fields
	KeyEventType           = "et"
	KeyKeyName             = "na"
	KeyThreadID            = "it"
	KeyActionID            = "ca"
	KeyParentActionID      = "pa"
	KeyStartSequenceNumber = "s0"
	KeyTime0               = "t0"
	KeyEndSequenceNumber   = "s1"
	KeyTime1               = "t1"
	KeyValue               = "vl"
	KeyErrorValue          = "ev"
	KeyReason              = "rs"
	KeyStacktrace          = "st"
	KeyResponseCode        = "rc"
	KeyBytesSent           = "bs"
	KeyBytesReceived       = "br"
	KeyEventPayload        = "pl"
)

// Status response keys
const (
	ResponseKeyType           = "type"
	ResponseKeyServerID       = "id"
	ResponseKeyMaxBeaconSize  = "bl"
	ResponseKeyMultiplicity   = "mp"
	ResponseKeyCapture        = "cp"
	ResponseKeyCaptureErrors  = "er"
	ResponseKeyCaptureCrashes = "cr"

	// Value of the type key in a monitor response
	ResponseTypeMonitor = "m"
)

// Privacy levels written to the dl and cl prefix fields
const (
	DataCollectionOff          int = 0
	DataCollectionPerformance  int = 1
	DataCollectionUserBehavior int = 2

	CrashReportingOff    int = 0
	CrashReportingOptOut int = 1
	CrashReportingOptIn  int = 2
)
