package corridor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/travigo/borderhop/pkg/ctdf"
)

var ErrStationCache = errors.New("reachable station cache unusable")

const SnapshotVersion = 1

// ReachableStationSet is the read-only list of stations known to be reachable
// from the home station. Order carries no meaning beyond output ordering.
type ReachableStationSet []ctdf.Location

type Snapshot struct {
	Version   int                 `json:"version"`
	Origin    string              `json:"origin"`
	Generated time.Time           `json:"generated"`
	Stations  ReachableStationSet `json:"stations"`
}

// LoadStations reads a station snapshot. The bare array written by earlier
// probe runs is accepted as version 0.
func LoadStations(path string) (ReachableStationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStationCache, err)
	}

	snapshot, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStationCache, path, err)
	}

	return snapshot.Stations, nil
}

func ParseSnapshot(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}

	snapshot := &Snapshot{}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &snapshot.Stations); err != nil {
			return nil, err
		}

		return snapshot, nil
	}

	if err := json.Unmarshal(trimmed, snapshot); err != nil {
		return nil, err
	}

	if snapshot.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return snapshot, nil
}
