package sender

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"rumbeacon/internal/global"
	"rumbeacon/internal/identity"
	"rumbeacon/pkg/protocol"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Loads config from file (YAML by .yaml/.yml extension, JSON otherwise) then applies environment overrides.
// An empty path loads from the environment only.
func LoadConfig(path string) (cfg FileConfig, err error) {
	if path != "" {
		var configFile []byte
		configFile, err = os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("failed to read config file: %w", err)
			return
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(configFile, &cfg)
		default:
			err = json.Unmarshal(configFile, &cfg)
		}
		if err != nil {
			err = fmt.Errorf("invalid config syntax in '%s': %w", path, err)
			return
		}
	}

	err = env.ParseWithOptions(&cfg, env.Options{Prefix: global.EnvPrefix})
	if err != nil {
		err = fmt.Errorf("failed to parse environment overrides: %w", err)
		return
	}
	return
}

// Parses file config into daemon config
func (cfg FileConfig) NewDaemonConf() (config Config, err error) {
	config.BeaconURL = cfg.Collector.BeaconURL
	config.MirrorEndpoint = cfg.Collector.BeatsMirror

	config.App = protocol.AppInfo{
		ApplicationID:      cfg.Application.ID,
		ApplicationName:    cfg.Application.Name,
		ApplicationVersion: cfg.Application.Version,
		DeviceID:           cfg.Application.DeviceID,
		OperatingSystem:    cfg.Application.OperatingSystem,
		Manufacturer:       cfg.Application.Manufacturer,
		ModelID:            cfg.Application.ModelID,
		UserLanguage:       cfg.Application.UserLanguage,
		ScreenWidth:        cfg.Application.ScreenWidth,
		ScreenHeight:       cfg.Application.ScreenHeight,
	}
	config.App.DataCollectionLevel, err = parseDataCollectionLevel(cfg.Application.DataCollectionLevel)
	if err != nil {
		return
	}
	config.App.CrashReportingLevel, err = parseCrashReportingLevel(cfg.Application.CrashReportingLevel)
	if err != nil {
		return
	}

	config.Supplementary = protocol.Supplementary{
		Carrier:           cfg.Network.Carrier,
		NetworkTechnology: cfg.Network.Technology,
	}
	config.Supplementary.ConnectionType, err = parseConnectionType(cfg.Network.ConnectionType)
	if err != nil {
		return
	}

	durations := []struct {
		field  string
		text   string
		target *time.Duration
	}{
		{"collector flush interval", cfg.Collector.FlushInterval, &config.FlushInterval},
		{"collector max backoff", cfg.Collector.MaxBackoff, &config.MaxBackoff},
		{"collector send timeout", cfg.Collector.SendTimeout, &config.SendTimeout},
		{"metric collection interval", cfg.Metrics.Interval, &config.MetricCollectionInterval},
		{"metric max age", cfg.Metrics.MaxAge, &config.MetricMaxAge},
	}
	for _, duration := range durations {
		if duration.text == "" {
			continue
		}
		*duration.target, err = time.ParseDuration(duration.text)
		if err != nil {
			err = fmt.Errorf("failed to parse %s: %w", duration.field, err)
			return
		}
	}

	config.MetricExportPath = cfg.Metrics.ExportPath
	return
}

func parseDataCollectionLevel(text string) (level int, err error) {
	switch strings.ToLower(text) {
	case "", "user_behavior", "userbehavior":
		level = protocol.DataCollectionUserBehavior
	case "performance":
		level = protocol.DataCollectionPerformance
	case "off":
		level = protocol.DataCollectionOff
	default:
		err = fmt.Errorf("invalid data collection level '%s': must be off, performance or user_behavior", text)
	}
	return
}

func parseCrashReportingLevel(text string) (level int, err error) {
	switch strings.ToLower(text) {
	case "", "opt_in", "optin":
		level = protocol.CrashReportingOptIn
	case "opt_out", "optout":
		level = protocol.CrashReportingOptOut
	case "off":
		level = protocol.CrashReportingOff
	default:
		err = fmt.Errorf("invalid crash reporting level '%s': must be off, opt_out or opt_in", text)
	}
	return
}

func parseConnectionType(text string) (connection protocol.ConnectionType, err error) {
	switch strings.ToLower(text) {
	case "":
	case "mobile":
		connection = protocol.ConnectionMobile
	case "wifi":
		connection = protocol.ConnectionWifi
	case "offline":
		connection = protocol.ConnectionOffline
	case "lan":
		connection = protocol.ConnectionLan
	default:
		err = fmt.Errorf("invalid connection type '%s': must be mobile, wifi, offline or lan", text)
	}
	return
}

// Checks required and range-bound values
func (cfg *Config) Validate() (err error) {
	if cfg.BeaconURL == "" {
		err = fmt.Errorf("collector beacon URL is required")
		return
	}
	if cfg.App.ApplicationID == "" {
		err = fmt.Errorf("application id is required")
		return
	}
	if cfg.App.ScreenWidth < 0 || cfg.App.ScreenHeight < 0 {
		err = fmt.Errorf("screen dimensions cannot be negative (%dx%d)", cfg.App.ScreenWidth, cfg.App.ScreenHeight)
		return
	}
	for field, value := range map[string]time.Duration{
		"flush interval":             cfg.FlushInterval,
		"max backoff":                cfg.MaxBackoff,
		"send timeout":               cfg.SendTimeout,
		"metric collection interval": cfg.MetricCollectionInterval,
		"metric max age":             cfg.MetricMaxAge,
	} {
		if value < 0 {
			err = fmt.Errorf("%s cannot be negative (%v)", field, value)
			return
		}
	}
	return
}

// Sets defaults for any missing values
func (cfg *Config) setDefaults() (err error) {
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = global.DefaultFlushInterval
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = global.DefaultMaxBackoff
	}
	if cfg.MaxBackoff < global.MinBackoff {
		cfg.MaxBackoff = global.MinBackoff
	}
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = global.DefaultSendTimeout
	}

	if cfg.MetricCollectionInterval == 0 {
		cfg.MetricCollectionInterval = global.DefaultMetricInterval
	}
	if cfg.MetricMaxAge == 0 {
		cfg.MetricMaxAge = global.DefaultMetricMaxAge
	}

	if cfg.App.OperatingSystem == "" {
		cfg.App.OperatingSystem = runtime.GOOS
	}
	if cfg.App.DeviceID == "" {
		cfg.App.DeviceID, err = identity.HostDeviceID(cfg.App.ApplicationID)
		if err != nil {
			err = fmt.Errorf("failed to derive device id: %w", err)
			return
		}
	}
	return
}
