package protocol

import (
	"reflect"
	"strconv"
	"testing"
)

func TestApplicationWidePrefix(t *testing.T) {
	tests := []struct {
		name string
		app  AppInfo
		want map[string]string
	}{
		{
			name: "maximum set of options",
			app: AppInfo{
				ApplicationID:       "application-id",
				ApplicationName:     "My application name",
				ApplicationVersion:  "1.2.3.4.5",
				DeviceID:            "42",
				OperatingSystem:     "linux",
				Manufacturer:        "ACME",
				ModelID:             "Rover",
				UserLanguage:        "de-AT",
				ScreenWidth:         4000,
				ScreenHeight:        1900,
				DataCollectionLevel: 2,
				CrashReportingLevel: 1,
			},
			want: map[string]string{
				KeyProtocolVersion: "3", KeyAgentVersion: AgentVersion, KeyApplicationID: "application-id",
				KeyApplicationName: "My application name", KeyApplicationVersion: "1.2.3.4.5",
				KeyPlatformType: "1", KeyAgentTechnologyType: AgentTechnologyType, KeyVisitorID: "42",
				KeyDataCollectionLevel: "2", KeyCrashReportingLevel: "1",
				KeyDeviceManufacturer: "ACME", KeyDeviceModel: "Rover", KeyScreenWidth: "4000",
				KeyScreenHeight: "1900", KeyUserLanguage: "de-AT", KeyOperatingSystem: "linux",
			},
		},
		{
			name: "minimum set of options",
			app: AppInfo{
				ApplicationID:       "application-id",
				DeviceID:            "42",
				DataCollectionLevel: 2,
				CrashReportingLevel: 1,
			},
			want: map[string]string{
				KeyProtocolVersion: "3", KeyAgentVersion: AgentVersion, KeyApplicationID: "application-id",
				KeyApplicationName: "", KeyPlatformType: "1", KeyAgentTechnologyType: AgentTechnologyType,
				KeyVisitorID: "42", KeyDataCollectionLevel: "2", KeyCrashReportingLevel: "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEntries(ApplicationWidePrefix(tt.app))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected prefix entries:\n got: %v\nwant: %v", got, tt.want)
			}
		})
	}
}

func TestSessionPrefix(t *testing.T) {
	prefix := SessionPrefix("mock=prefix", 678, "", 7000)

	want := map[string]string{
		"mock":              "prefix",
		KeySessionNumber:    "678",
		KeyClientIPAddress:  "",
		KeySessionStartTime: "7000",
	}
	if got := ParseEntries(prefix); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMutable(t *testing.T) {
	tests := []struct {
		name          string
		supplementary Supplementary
		want          map[string]string
	}{
		{
			name: "no supplementary data",
			want: map[string]string{KeyMultiplicity: "765", KeyTransmissionTime: "98765"},
		},
		{
			name:          "with supplementary data",
			supplementary: Supplementary{Carrier: "Carrier One", NetworkTechnology: "LTE", ConnectionType: ConnectionWifi},
			want: map[string]string{
				KeyMultiplicity: "765", KeyTransmissionTime: "98765",
				KeyCarrier: "Carrier One", KeyNetworkTechnology: "LTE", KeyConnectionType: "w",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEntries(Mutable(765, 98765, tt.supplementary))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"a=1", "b=2"}, "a=1&b=2"},
		{[]string{"", "b=2", ""}, "b=2"},
		{[]string{}, ""},
	}
	for i, tt := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := Combine(tt.parts...); got != tt.want {
				t.Fatalf("Combine(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}
