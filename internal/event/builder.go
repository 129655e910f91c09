// JSON business and custom event payloads with reserved attribute handling
package event

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"rumbeacon/internal/global"
	"rumbeacon/internal/logctx"
	"strconv"
	"strings"
	"time"
)

func NewBuilder(ctx context.Context, info Info) (new *Builder) {
	new = &Builder{
		ctx:  logctx.AppendCtxTag(ctx, global.NSEvent),
		info: info,
		now:  func() int64 { return time.Now().UnixNano() },
	}
	return
}

// Replaces the timestamp source
func (builder *Builder) WithClock(now func() int64) (same *Builder) {
	builder.now = now
	same = builder
	return
}

// Business event. custom_attributes_size measures the caller attributes plus event.type only.
func (builder *Builder) BizEvent(eventType string, attrs *Attributes, sessionNumber int64) (payload string) {
	internal := attrs.Clone()

	builder.setReserved(internal, AttrEventType, eventType)
	callerSize := len(builder.encode(internal))

	builder.addBasicData(internal, sessionNumber)
	builder.setReserved(internal, AttrEventKind, EventKindBiz)
	builder.setReserved(internal, AttrCustomAttributesSize, callerSize)

	payload = builder.encode(internal)
	return
}

// Custom RUM event; the caller may override event.kind
func (builder *Builder) CustomEvent(name string, attrs *Attributes, sessionNumber int64) (payload string) {
	internal := attrs.Clone()

	builder.addBasicData(internal, sessionNumber)
	builder.setReserved(internal, AttrEventName, name)
	setDefault(internal, AttrEventKind, EventKindRum)

	payload = builder.encode(internal)
	return
}

func (builder *Builder) addBasicData(attrs *Attributes, sessionNumber int64) {
	builder.stripReservedNamespace(attrs)

	setDefault(attrs, AttrTimestamp, builder.now())

	builder.setReserved(attrs, AttrSchemaVersion, SchemaVersion)
	builder.setReserved(attrs, AttrApplicationID, builder.info.ApplicationID)
	builder.setReserved(attrs, AttrInstanceID, builder.info.DeviceID)
	builder.setReserved(attrs, AttrSessionID, strconv.FormatInt(sessionNumber, 10))

	setDefaultString(attrs, AttrAppVersion, builder.info.ApplicationVersion)
	setDefaultString(attrs, AttrOSName, builder.info.OperatingSystem)
	setDefaultString(attrs, AttrDeviceManufacturer, builder.info.Manufacturer)
	setDefaultString(attrs, AttrDeviceModelIdentifier, builder.info.ModelID)
	setDefaultString(attrs, AttrEventProvider, builder.info.ApplicationID)
}

// Removes caller keys named dt or starting with dt.
func (builder *Builder) stripReservedNamespace(attrs *Attributes) {
	for _, key := range attrs.Keys() {
		if key == reservedNamespace || strings.HasPrefix(key, reservedNamespace+".") {
			logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.WarnLog,
				"key name %q is in the reserved dt namespace, attribute removed\n", key)
			attrs.Delete(key)
		}
	}
}

// Non-overridable attribute: always written, caller value replaced with a warning
func (builder *Builder) setReserved(attrs *Attributes, key string, value any) {
	if attrs.Has(key) {
		logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.WarnLog,
			"key %q is reserved, custom value replaced\n", key)
	}
	attrs.Set(key, value)
}

// Overridable attribute: only written when the caller did not supply it
func setDefault(attrs *Attributes, key string, value any) {
	if !attrs.Has(key) {
		attrs.Set(key, value)
	}
}

func setDefaultString(attrs *Attributes, key string, value string) {
	if value == "" {
		return
	}
	setDefault(attrs, key, value)
}

// Serializes attributes in insertion order.
// Non-finite floats and values that cannot be marshaled are left out.
func (builder *Builder) encode(attrs *Attributes) (payload string) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	var written int
	for _, key := range attrs.Keys() {
		value, _ := attrs.Get(key)
		if !isFinite(value) {
			continue
		}

		encodedValue, err := marshal(value)
		if err != nil {
			logctx.LogEvent(builder.ctx, global.VerbosityStandard, global.WarnLog,
				"dropping attribute %q: %v\n", key, err)
			continue
		}
		encodedKey, _ := marshal(key)

		if written > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
		written++
	}

	buf.WriteByte('}')
	payload = buf.String()
	return
}

// JSON encoding without HTML escaping
func marshal(value any) (encoded []byte, err error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err = encoder.Encode(value)
	if err != nil {
		return
	}
	encoded = bytes.TrimRight(buf.Bytes(), "\n")
	return
}

func isFinite(value any) (finite bool) {
	finite = true
	switch v := value.(type) {
	case float64:
		finite = !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		finite = !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	}
	return
}
