// Stable device identifiers and random session numbers
package identity

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Locations of the host machine id, first readable wins
var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// Derives a numeric device id from the given inputs.
// Inputs are combined in order; the same inputs always give the same id.
func DeviceID(inputs ...string) (id string, err error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		err = fmt.Errorf("failed to create hasher: %w", err)
		return
	}

	for _, input := range inputs {
		_, err = hasher.Write([]byte(input))
		if err != nil {
			err = fmt.Errorf("error writing data to hash: %w", err)
			return
		}
		// Separator so ("ab","c") and ("a","bc") differ
		_, err = hasher.Write([]byte{0})
		if err != nil {
			err = fmt.Errorf("error writing data to hash: %w", err)
			return
		}
	}

	sum := hasher.Sum(nil)
	// Positive int64 range keeps the id parseable by collectors
	number := binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63)
	id = strconv.FormatUint(number, 10)
	return
}

// Device id for this host and application.
// Uses the machine id when available, hostname otherwise.
func HostDeviceID(applicationID string) (id string, err error) {
	hostname, err := os.Hostname()
	if err != nil {
		err = fmt.Errorf("failed to retrieve hostname: %w", err)
		return
	}

	var machineID string
	for _, path := range machineIDPaths {
		content, readErr := os.ReadFile(path)
		if readErr == nil {
			machineID = strings.TrimSpace(string(content))
			break
		}
	}

	id, err = DeviceID(machineID, hostname, applicationID)
	return
}
