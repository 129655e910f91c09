package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion  string = "v0.3.0"
	ProgBaseName string = "rumbeacon"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Event queue (mostly for variable log verbosity handling)
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	DefaultConfigPath string = "/etc/rumbeacon.json"

	// Negotiated communication defaults (overwritten by status responses)
	DefaultServerID      int = 1
	DefaultMultiplicity  int = 1
	DefaultMaxBeaconSize int = 30 * 1024 // bytes

	// Sender loop defaults
	DefaultFlushInterval time.Duration = 2 * time.Second
	DefaultMaxBackoff    time.Duration = 30 * time.Second
	DefaultSendTimeout   time.Duration = 10 * time.Second
	MinBackoff           time.Duration = 1 * time.Second

	// Metric collection defaults
	DefaultMetricInterval time.Duration = 15 * time.Second
	DefaultMetricMaxAge   time.Duration = 1 * time.Hour

	// Environment variable prefix for configuration overrides
	EnvPrefix string = "RUMBEACON_"

	// Fraction of system memory a single session queue may grow to before warnings
	QueueMemoryDivisor uint64 = 64

	// Timeout values
	SendShutdownTimeout time.Duration = 5 * time.Second

	// Namespacing Name Components
	NSMetric   string = "Metrics"
	NSTest     string = "Test"
	NSSend     string = "Sender"
	NSAgent    string = "Agent"
	NSSession  string = "Session"
	NSBuilder  string = "Builder"
	NSEvent    string = "EventPayload"
	NSQueue    string = "Queue"
	NSIngest   string = "Ingest"
	NSHTTP     string = "HTTP"
	NSMirror   string = "BeatsMirror"
)
