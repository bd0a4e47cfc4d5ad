package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvironmentDefaults(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{"RAILTRACK_SESSION_FILE": "/tmp/session.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "https://api.railtrack.com/v1", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.LiveRefreshRate)
	assert.Equal(t, time.Minute, cfg.PNRRefreshRate)
	assert.Equal(t, 15, cfg.DelayAlertMinutes)
	assert.Equal(t, "/tmp/session.yaml", cfg.SessionFile)
}

func TestFromEnvironmentOverrides(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{
		"RAILTRACK_ENV":                 "staging",
		"RAILTRACK_LIVE_REFRESH":        "30s",
		"RAILTRACK_DELAY_ALERT_MINUTES": "45",
		"RAILTRACK_JWT_AUDIENCE":        "tests",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api-staging.railtrack.com/v1", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.LiveRefreshRate)
	assert.Equal(t, 45, cfg.DelayAlertMinutes)
	assert.Equal(t, "tests", cfg.JWTAudience)

	cfg, err = FromEnvironment(map[string]string{"RAILTRACK_API_URL": "http://10.0.2.2:3000/v1"})
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.2.2:3000/v1", cfg.APIURL)
}

func TestFromEnvironmentRejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"RAILTRACK_ENV":                  "moon",
		"RAILTRACK_LIVE_REFRESH":         "soon",
		"RAILTRACK_PNR_REFRESH":          "-1m",
		"RAILTRACK_DELAY_ALERT_MINUTES":  "lots",
		"RAILTRACK_MAX_CONCURRENT_POLLS": "0",
	} {
		_, err := FromEnvironment(map[string]string{key: value})
		assert.Error(t, err, key)
	}
}
