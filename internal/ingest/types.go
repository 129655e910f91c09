package ingest

import (
	"encoding/json"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/event"
	"sync/atomic"
)

// Upper bound for one input line
const MaxLineSize = 1024 * 1024

// Operations understood in the "op" field
const (
	OpEnter    = "enter"
	OpLeave    = "leave"
	OpEvent    = "event"
	OpValue    = "value"
	OpError    = "error"
	OpCrash    = "crash"
	OpIdentify = "identify"
	OpRequest  = "request"
	OpBiz      = "biz"
	OpCustom   = "custom"
	OpEnd      = "end"
)

// One JSON input line. Fields not used by an operation are ignored.
type Line struct {
	Op            string          `json:"op"`
	ID            string          `json:"id,omitempty"`     // label naming an action for later lines
	Action        string          `json:"action,omitempty"` // label of the parent action
	Name          string          `json:"name,omitempty"`
	Value         json.RawMessage `json:"value,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Code          int64           `json:"code,omitempty"`
	Stacktrace    string          `json:"stacktrace,omitempty"`
	User          string          `json:"user,omitempty"`
	URL           string          `json:"url,omitempty"`
	Status        *int64          `json:"status,omitempty"`
	BytesSent     *int64          `json:"bytesSent,omitempty"`
	BytesReceived *int64          `json:"bytesReceived,omitempty"`
	Type          string          `json:"type,omitempty"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
}

// Session operations the reader drives
type Target interface {
	EnterAction(name string) *agent.Action
	ReportEvent(name string)
	ReportValue(name string, value any)
	ReportError(name string, reason string, code int64)
	ReportCrash(name string, reason string, stacktrace string)
	IdentifyUser(userTag string)
	TraceWebRequest(url string) *agent.WebRequestTracer
	SendBizEvent(eventType string, attrs *event.Attributes)
	SendEvent(name string, attrs *event.Attributes)
	End()
}

type Reader struct {
	Namespace []string
	target    Target
	actions   map[string]*agent.Action
	Metrics   *MetricStorage
}

type MetricStorage struct {
	LinesRead atomic.Uint64
	Applied   atomic.Uint64
	Malformed atomic.Uint64
}
