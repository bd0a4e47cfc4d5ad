package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrackingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
trips:
  - id: t1
    userId: u1
    trainNumber: "12951"
    journeyDate: "2026-03-09"
    isLive: true
    rules:
      - name: late-into-bhopal
        expression: DelayMinutes > 30 && NextStation == "BPL"
pnrs:
  - pnr: "1234567890"
    userId: u1
`), 0o600))

	file, err := LoadTrackingFile(path)
	require.NoError(t, err)

	require.Len(t, file.Trips, 1)
	assert.Equal(t, "12951", file.Trips[0].Trip.TrainNumber)
	assert.True(t, file.Trips[0].Trip.IsLive)
	require.Len(t, file.Trips[0].Rules, 1)
	assert.Equal(t, "late-into-bhopal", file.Trips[0].Rules[0].Name)

	require.Len(t, file.PNRs, 1)
	assert.Equal(t, WatchedPNR{PNR: "1234567890", UserID: "u1"}, file.PNRs[0])
}

func TestLoadTrackingFileErrors(t *testing.T) {
	_, err := LoadTrackingFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "tracking.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trips:\n  - trainNumber: \"12951\"\n"), 0o600))

	_, err = LoadTrackingFile(path)
	assert.Error(t, err)
}
