package sender

import (
	"os"
	"path/filepath"
	"rumbeacon/internal/global"
	"rumbeacon/pkg/protocol"
	"runtime"
	"strings"
	"testing"
	"time"
)

const testJSONConfig = `{
	"application": {
		"id": "app-json",
		"name": "Shop",
		"version": "2.1",
		"screenWidth": 1080,
		"screenHeight": 1920,
		"dataCollectionLevel": "performance",
		"crashReportingLevel": "opt_out"
	},
	"network": {
		"carrier": "Acme",
		"technology": "LTE",
		"connectionType": "mobile"
	},
	"collector": {
		"beaconURL": "https://collector.example/mbeacon",
		"flushInterval": "5s",
		"maxBackoff": "1m",
		"sendTimeout": "3s"
	},
	"metrics": {
		"collectionInterval": "30s",
		"maximumRetention": "2h"
	}
}`

const testYAMLConfig = `
application:
  id: app-yaml
  dataCollectionLevel: user_behavior
  crashReportingLevel: opt_in
network:
  connectionType: wifi
collector:
  beaconURL: http://localhost:9000/mbeacon
  beatsMirror: localhost:5044
metrics:
  exportPath: /tmp/rumbeacon-metrics.json
`

func writeConfig(t *testing.T, name string, content string) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "rumbeacon.json", testJSONConfig)

	fileCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := fileCfg.NewDaemonConf()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BeaconURL != "https://collector.example/mbeacon" {
		t.Fatalf("unexpected beacon URL %q", cfg.BeaconURL)
	}
	if cfg.App.ApplicationID != "app-json" || cfg.App.ApplicationName != "Shop" || cfg.App.ApplicationVersion != "2.1" {
		t.Fatalf("unexpected application info %+v", cfg.App)
	}
	if cfg.App.ScreenWidth != 1080 || cfg.App.ScreenHeight != 1920 {
		t.Fatalf("unexpected screen %dx%d", cfg.App.ScreenWidth, cfg.App.ScreenHeight)
	}
	if cfg.App.DataCollectionLevel != protocol.DataCollectionPerformance {
		t.Fatalf("expected performance level, got %d", cfg.App.DataCollectionLevel)
	}
	if cfg.App.CrashReportingLevel != protocol.CrashReportingOptOut {
		t.Fatalf("expected opt-out crash level, got %d", cfg.App.CrashReportingLevel)
	}
	wantSupplementary := protocol.Supplementary{Carrier: "Acme", NetworkTechnology: "LTE", ConnectionType: protocol.ConnectionMobile}
	if cfg.Supplementary != wantSupplementary {
		t.Fatalf("expected supplementary %+v, got %+v", wantSupplementary, cfg.Supplementary)
	}
	if cfg.FlushInterval != 5*time.Second || cfg.MaxBackoff != time.Minute || cfg.SendTimeout != 3*time.Second {
		t.Fatalf("unexpected send durations: %v %v %v", cfg.FlushInterval, cfg.MaxBackoff, cfg.SendTimeout)
	}
	if cfg.MetricCollectionInterval != 30*time.Second || cfg.MetricMaxAge != 2*time.Hour {
		t.Fatalf("unexpected metric durations: %v %v", cfg.MetricCollectionInterval, cfg.MetricMaxAge)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	for _, name := range []string{"rumbeacon.yaml", "rumbeacon.YML"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, testYAMLConfig)

			fileCfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cfg, err := fileCfg.NewDaemonConf()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.App.ApplicationID != "app-yaml" {
				t.Fatalf("unexpected application id %q", cfg.App.ApplicationID)
			}
			if cfg.MirrorEndpoint != "localhost:5044" {
				t.Fatalf("unexpected mirror endpoint %q", cfg.MirrorEndpoint)
			}
			if cfg.Supplementary.ConnectionType != protocol.ConnectionWifi {
				t.Fatalf("expected wifi connection, got %q", cfg.Supplementary.ConnectionType)
			}
			if cfg.MetricExportPath != "/tmp/rumbeacon-metrics.json" {
				t.Fatalf("unexpected export path %q", cfg.MetricExportPath)
			}
			if cfg.FlushInterval != 0 {
				t.Fatalf("expected unset flush interval before defaults, got %v", cfg.FlushInterval)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverlay(t *testing.T) {
	path := writeConfig(t, "rumbeacon.json", testJSONConfig)

	t.Setenv(global.EnvPrefix+"COLLECTOR_BEACON_URL", "https://override.example/mbeacon")
	t.Setenv(global.EnvPrefix+"APP_SCREEN_WIDTH", "800")
	t.Setenv(global.EnvPrefix+"APP_DATA_COLLECTION_LEVEL", "off")
	t.Setenv(global.EnvPrefix+"NETWORK_CONNECTION_TYPE", "lan")

	fileCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := fileCfg.NewDaemonConf()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BeaconURL != "https://override.example/mbeacon" {
		t.Fatalf("expected environment beacon URL, got %q", cfg.BeaconURL)
	}
	if cfg.App.ScreenWidth != 800 || cfg.App.ScreenHeight != 1920 {
		t.Fatalf("expected width overridden and height kept, got %dx%d", cfg.App.ScreenWidth, cfg.App.ScreenHeight)
	}
	if cfg.App.DataCollectionLevel != protocol.DataCollectionOff {
		t.Fatalf("expected data collection off, got %d", cfg.App.DataCollectionLevel)
	}
	if cfg.Supplementary.ConnectionType != protocol.ConnectionLan {
		t.Fatalf("expected lan connection, got %q", cfg.Supplementary.ConnectionType)
	}
	if cfg.App.ApplicationID != "app-json" {
		t.Fatalf("expected file value kept without override, got %q", cfg.App.ApplicationID)
	}
}

func TestLoadConfig_EnvironmentOnly(t *testing.T) {
	t.Setenv(global.EnvPrefix+"APP_ID", "env-app")
	t.Setenv(global.EnvPrefix+"COLLECTOR_BEACON_URL", "http://env.example/mbeacon")

	fileCfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileCfg.Application.ID != "env-app" || fileCfg.Collector.BeaconURL != "http://env.example/mbeacon" {
		t.Fatalf("unexpected environment config %+v", fileCfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
		},
		{
			name: "invalid json",
			path: func(t *testing.T) string { return writeConfig(t, "bad.json", `{"application": `) },
		},
		{
			name: "invalid yaml",
			path: func(t *testing.T) string { return writeConfig(t, "bad.yaml", "application: [unclosed") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(tt.path(t)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewDaemonConf_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *FileConfig)
		wantErr string
	}{
		{
			name:    "data collection level",
			mutate:  func(cfg *FileConfig) { cfg.Application.DataCollectionLevel = "everything" },
			wantErr: "data collection level",
		},
		{
			name:    "crash reporting level",
			mutate:  func(cfg *FileConfig) { cfg.Application.CrashReportingLevel = "always" },
			wantErr: "crash reporting level",
		},
		{
			name:    "connection type",
			mutate:  func(cfg *FileConfig) { cfg.Network.ConnectionType = "satellite" },
			wantErr: "connection type",
		},
		{
			name:    "flush interval",
			mutate:  func(cfg *FileConfig) { cfg.Collector.FlushInterval = "soon" },
			wantErr: "flush interval",
		},
		{
			name:    "metric max age",
			mutate:  func(cfg *FileConfig) { cfg.Metrics.MaxAge = "10 minutes" },
			wantErr: "metric max age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fileCfg FileConfig
			tt.mutate(&fileCfg)

			_, err := fileCfg.NewDaemonConf()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			BeaconURL: "https://collector.example/mbeacon",
			App:       protocol.AppInfo{ApplicationID: "app"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{name: "missing beacon URL", mutate: func(cfg *Config) { cfg.BeaconURL = "" }, wantErr: true},
		{name: "missing application id", mutate: func(cfg *Config) { cfg.App.ApplicationID = "" }, wantErr: true},
		{name: "negative screen", mutate: func(cfg *Config) { cfg.App.ScreenHeight = -1 }, wantErr: true},
		{name: "negative flush interval", mutate: func(cfg *Config) { cfg.FlushInterval = -time.Second }, wantErr: true},
		{name: "negative metric age", mutate: func(cfg *Config) { cfg.MetricMaxAge = -time.Minute }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := Config{
		App:        protocol.AppInfo{ApplicationID: "app", DeviceID: "42"},
		MaxBackoff: 100 * time.Millisecond,
	}
	if err := cfg.setDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FlushInterval != global.DefaultFlushInterval {
		t.Fatalf("expected default flush interval, got %v", cfg.FlushInterval)
	}
	if cfg.MaxBackoff != global.MinBackoff {
		t.Fatalf("expected max backoff raised to %v, got %v", global.MinBackoff, cfg.MaxBackoff)
	}
	if cfg.SendTimeout != global.DefaultSendTimeout {
		t.Fatalf("expected default send timeout, got %v", cfg.SendTimeout)
	}
	if cfg.MetricCollectionInterval != global.DefaultMetricInterval || cfg.MetricMaxAge != global.DefaultMetricMaxAge {
		t.Fatalf("unexpected metric defaults: %v %v", cfg.MetricCollectionInterval, cfg.MetricMaxAge)
	}
	if cfg.App.OperatingSystem != runtime.GOOS {
		t.Fatalf("expected operating system %q, got %q", runtime.GOOS, cfg.App.OperatingSystem)
	}
	if cfg.App.DeviceID != "42" {
		t.Fatalf("expected configured device id kept, got %q", cfg.App.DeviceID)
	}

	derived := Config{App: protocol.AppInfo{ApplicationID: "app"}}
	if err := derived.setDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if derived.App.DeviceID == "" {
		t.Fatalf("expected derived device id")
	}
}
