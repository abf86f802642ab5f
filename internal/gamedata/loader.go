package gamedata

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Checksum returns the xxhash of an embedded file's raw bytes, so traces
// can tell which revision of the data a session ran with.
func Checksum(filename string) (uint64, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}
	return xxhash.Sum64(content), nil
}
