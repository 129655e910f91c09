package transport

import (
	"fmt"
	"os"
	"rumbeacon/internal/global"
	"rumbeacon/pkg/protocol"
	"time"

	lumberjack "github.com/elastic/go-lumber/client/v2"
)

// Connects the beats mirror. Returns nil nil if no endpoint.
func NewBeatsMirror(namespace []string, endpoint string) (mirror *BeatsMirror, err error) {
	if endpoint == "" {
		return
	}

	compression := lumberjack.CompressionLevel(0)
	timeout := lumberjack.Timeout(3 * time.Second)

	ljClient, err := lumberjack.SyncDial(endpoint, compression, timeout)
	if err != nil {
		err = fmt.Errorf("failed connection to beats server: %w", err)
		return
	}

	mirror = &BeatsMirror{
		Namespace: append(append([]string(nil), namespace...), global.NSMirror),
		sink:      ljClient,
		Metrics:   &MetricStorage{},
	}
	return
}

// Writes the beacon and its decoded fields as one beats event
func (mirror *BeatsMirror) Send(beacon string, sentAt time.Time) (err error) {
	if mirror == nil {
		return
	}

	entries := protocol.ParseEntries(beacon)
	rum := make(map[string]interface{}, len(entries))
	for key, value := range entries {
		rum[key] = value
	}

	fields := map[string]interface{}{
		"@timestamp": sentAt.UTC().Format(time.RFC3339Nano),
		"message":    beacon,
		"rum":        rum,
		"agent": map[string]interface{}{
			"program": global.ProgBaseName,
			"version": global.ProgVersion,
			"type":    "rumbeacon",
			"pid":     os.Getpid(),
		},
	}

	_, err = mirror.sink.Send([]interface{}{fields})
	if err != nil {
		mirror.Metrics.Failures.Add(1)
		err = fmt.Errorf("failed sending beacon to beats server: %w", err)
		return
	}
	mirror.Metrics.BeaconsSent.Add(1)
	mirror.Metrics.BytesSent.Add(uint64(len(beacon)))
	return
}

// Gracefully stops mirror
func (mirror *BeatsMirror) Close() (err error) {
	if mirror == nil {
		return
	}
	if mirror.sink != nil {
		err = mirror.sink.Close()
	}
	return
}
