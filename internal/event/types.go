package event

import "context"

// Reserved attribute names
const (
	AttrEventType             = "event.type"
	AttrEventName             = "event.name"
	AttrEventKind             = "event.kind"
	AttrEventProvider         = "event.provider"
	AttrTimestamp             = "timestamp"
	AttrAppVersion            = "app.version"
	AttrOSName                = "os.name"
	AttrDeviceManufacturer    = "device.manufacturer"
	AttrDeviceModelIdentifier = "device.model.identifier"
	AttrSchemaVersion         = "dt.rum.schema_version"
	AttrApplicationID         = "dt.rum.application.id"
	AttrInstanceID            = "dt.rum.instance.id"
	AttrSessionID             = "dt.rum.sid"
	AttrCustomAttributesSize  = "dt.rum.custom_attributes_size"

	EventKindBiz  = "BIZ_EVENT"
	EventKindRum  = "RUM_EVENT"
	SchemaVersion = "1.1"

	reservedNamespace = "dt"
)

// Application data stamped onto every event
type Info struct {
	ApplicationID      string
	DeviceID           string
	ApplicationVersion string
	OperatingSystem    string
	Manufacturer       string
	ModelID            string
}

// Builds JSON business and custom events
type Builder struct {
	ctx  context.Context
	info Info
	now  func() int64 // nanoseconds since epoch
}
