package transport

import (
	"net"
	"rumbeacon/internal/global"
	"testing"
	"time"

	lumberserver "github.com/elastic/go-lumber/server/v2"
)

func TestNewBeatsMirror_Disabled(t *testing.T) {
	mirror, err := NewBeatsMirror([]string{global.NSTest}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mirror != nil {
		t.Fatalf("expected nil mirror without endpoint")
	}

	// nil mirror is usable
	if err := mirror.Send("et=18", time.Now()); err != nil {
		t.Fatalf("unexpected error from nil mirror: %v", err)
	}
	if err := mirror.Close(); err != nil {
		t.Fatalf("unexpected error closing nil mirror: %v", err)
	}
	if metrics := mirror.CollectMetrics(time.Second); metrics != nil {
		t.Fatalf("expected no metrics from nil mirror")
	}
}

func TestBeatsMirror_Send(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	server, err := lumberserver.NewWithListener(listener)
	if err != nil {
		t.Fatalf("failed to start beats server: %v", err)
	}
	defer server.Close()

	received := make(chan map[string]interface{}, 1)
	go func() {
		batch := server.Receive()
		if batch == nil {
			return
		}
		batch.ACK()
		if len(batch.Events) > 0 {
			if fields, ok := batch.Events[0].(map[string]interface{}); ok {
				received <- fields
			}
		}
	}()

	mirror, err := NewBeatsMirror([]string{global.NSTest}, listener.Addr().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mirror.Close()

	beacon := "vv=3&sn=77&et=40&na=failed%20call"
	if err := mirror.Send(beacon, time.Now()); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	select {
	case fields := <-received:
		if fields["message"] != beacon {
			t.Fatalf("expected message %q, got %v", beacon, fields["message"])
		}
		rum, ok := fields["rum"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected rum field map, got %T", fields["rum"])
		}
		if rum["sn"] != "77" || rum["na"] != "failed call" {
			t.Fatalf("unexpected decoded fields: %v", rum)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for mirrored event")
	}

	if mirror.Metrics.BeaconsSent.Load() != 1 {
		t.Fatalf("expected one mirrored beacon, got %d", mirror.Metrics.BeaconsSent.Load())
	}
}
