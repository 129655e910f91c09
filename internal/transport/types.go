package transport

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"rumbeacon/internal/commstate"
	"sync/atomic"

	lumberjack "github.com/elastic/go-lumber/client/v2"
)

// Collector rejected the request in a way worth retrying later (429 or 5xx)
var ErrServerBusy = errors.New("collector busy")

// Identifies the sender to the collector on every request
type StatusRequest struct {
	ServerID      int
	ApplicationID string
}

// Delivers beacons to a collector
type Client interface {
	SendStatusRequest(ctx context.Context, request StatusRequest) (resp commstate.StatusResponse, err error)
	SendBeacon(ctx context.Context, request StatusRequest, body string) (resp commstate.StatusResponse, err error)
}

type HTTPClient struct {
	Namespace []string
	endpoint  *url.URL
	sink      *http.Client
	Metrics   *MetricStorage
}

// Copies sent beacons to a beats (lumberjack) endpoint
type BeatsMirror struct {
	Namespace []string
	sink      *lumberjack.SyncClient
	Metrics   *MetricStorage
}

type MetricStorage struct {
	StatusRequests   atomic.Uint64
	BeaconsSent      atomic.Uint64
	BytesSent        atomic.Uint64
	InvalidResponses atomic.Uint64
	Failures         atomic.Uint64
	BusyResponses    atomic.Uint64
}
