package tracker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrackingFile is the YAML list of trips and PNRs a tracker instance follows.
//
//	trips:
//	  - id: t1
//	    userId: u1
//	    trainNumber: "12951"
//	    journeyDate: "2026-03-09"
//	    isLive: true
//	    rules:
//	      - name: late-into-bhopal
//	        expression: DelayMinutes > 30 && NextStation == "BPL"
//	pnrs:
//	  - pnr: "1234567890"
//	    userId: u1
type TrackingFile struct {
	Trips []TrackedTrip `yaml:"trips"`
	PNRs  []WatchedPNR  `yaml:"pnrs"`
}

func LoadTrackingFile(path string) (*TrackingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking file: %w", err)
	}

	var file TrackingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tracking file %s: %w", path, err)
	}

	for _, trip := range file.Trips {
		if trip.Trip.ID == "" {
			return nil, fmt.Errorf("tracking file %s has a trip without an id", path)
		}
	}

	return &file, nil
}
