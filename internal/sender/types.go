package sender

import (
	"context"
	"rumbeacon/internal/agent"
	"rumbeacon/internal/metrics"
	"rumbeacon/internal/transport"
	"rumbeacon/pkg/protocol"
	"sync"
	"sync/atomic"
	"time"
)

// On-disk configuration (JSON or YAML), overlaid by RUMBEACON_* environment variables
type FileConfig struct {
	Application struct {
		ID                  string `json:"id" yaml:"id" env:"ID"`
		Name                string `json:"name,omitempty" yaml:"name,omitempty" env:"NAME"`
		Version             string `json:"version,omitempty" yaml:"version,omitempty" env:"VERSION"`
		DeviceID            string `json:"deviceID,omitempty" yaml:"deviceID,omitempty" env:"DEVICE_ID"`
		OperatingSystem     string `json:"operatingSystem,omitempty" yaml:"operatingSystem,omitempty" env:"OPERATING_SYSTEM"`
		Manufacturer        string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty" env:"MANUFACTURER"`
		ModelID             string `json:"modelID,omitempty" yaml:"modelID,omitempty" env:"MODEL_ID"`
		UserLanguage        string `json:"userLanguage,omitempty" yaml:"userLanguage,omitempty" env:"USER_LANGUAGE"`
		ScreenWidth         int    `json:"screenWidth,omitempty" yaml:"screenWidth,omitempty" env:"SCREEN_WIDTH"`
		ScreenHeight        int    `json:"screenHeight,omitempty" yaml:"screenHeight,omitempty" env:"SCREEN_HEIGHT"`
		DataCollectionLevel string `json:"dataCollectionLevel,omitempty" yaml:"dataCollectionLevel,omitempty" env:"DATA_COLLECTION_LEVEL"`
		CrashReportingLevel string `json:"crashReportingLevel,omitempty" yaml:"crashReportingLevel,omitempty" env:"CRASH_REPORTING_LEVEL"`
	} `json:"application" yaml:"application" envPrefix:"APP_"`
	Network struct {
		Carrier        string `json:"carrier,omitempty" yaml:"carrier,omitempty" env:"CARRIER"`
		Technology     string `json:"technology,omitempty" yaml:"technology,omitempty" env:"TECHNOLOGY"`
		ConnectionType string `json:"connectionType,omitempty" yaml:"connectionType,omitempty" env:"CONNECTION_TYPE"`
	} `json:"network" yaml:"network" envPrefix:"NETWORK_"`
	Collector struct {
		BeaconURL     string `json:"beaconURL" yaml:"beaconURL" env:"BEACON_URL"`
		BeatsMirror   string `json:"beatsMirror,omitempty" yaml:"beatsMirror,omitempty" env:"BEATS_MIRROR"`
		FlushInterval string `json:"flushInterval,omitempty" yaml:"flushInterval,omitempty" env:"FLUSH_INTERVAL"`
		MaxBackoff    string `json:"maxBackoff,omitempty" yaml:"maxBackoff,omitempty" env:"MAX_BACKOFF"`
		SendTimeout   string `json:"sendTimeout,omitempty" yaml:"sendTimeout,omitempty" env:"SEND_TIMEOUT"`
	} `json:"collector" yaml:"collector" envPrefix:"COLLECTOR_"`
	Metrics struct {
		Interval   string `json:"collectionInterval,omitempty" yaml:"collectionInterval,omitempty" env:"INTERVAL"`
		MaxAge     string `json:"maximumRetention,omitempty" yaml:"maximumRetention,omitempty" env:"MAX_AGE"`
		ExportPath string `json:"exportPath,omitempty" yaml:"exportPath,omitempty" env:"EXPORT_PATH"`
	} `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`
}

type Config struct {
	// Destination
	BeaconURL      string
	MirrorEndpoint string

	// Identity
	App           protocol.AppInfo
	Supplementary protocol.Supplementary

	// Send loop
	FlushInterval time.Duration
	MaxBackoff    time.Duration
	SendTimeout   time.Duration

	// Metrics
	MetricCollectionInterval time.Duration
	MetricMaxAge             time.Duration
	MetricExportPath         string
}

type Daemon struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc

	wg sync.WaitGroup

	Agent    *agent.Agent
	client   transport.Client
	mirror   *transport.BeatsMirror
	Registry *metrics.Registry

	flushMutex  sync.Mutex // one flush pass at a time
	mutex       sync.Mutex // guards sessions and backoff
	sessions    []*agent.Session
	backoff     time.Duration
	nextAttempt time.Time

	Namespace []string
	Metrics   *MetricStorage
}

type MetricStorage struct {
	Flushes         atomic.Uint64
	DroppedBeacons  atomic.Uint64
	Backoffs        atomic.Uint64
	StoppedSessions atomic.Uint64
	ActiveSessions  atomic.Int64
}
