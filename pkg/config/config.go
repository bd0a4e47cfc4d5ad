package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/railtrack/railtrack/pkg/util"
)

// Backend API locations per deployment environment.
var apiURLs = map[string]string{
	"development": "http://localhost:3000/v1",
	"staging":     "https://api-staging.railtrack.com/v1",
	"production":  "https://api.railtrack.com/v1",
}

const (
	defaultEnvironment        = "production"
	defaultLiveRefreshRate    = 2 * time.Minute
	defaultPNRRefreshRate     = time.Minute
	defaultDelayAlertMinutes  = 15
	defaultMaxConcurrentPolls = 8
	defaultJWTIssuer          = "https://api.railtrack.com/"
	defaultJWTAudience        = "railtrack-app"
)

type Config struct {
	Environment string
	APIURL      string

	SessionFile string
	TripsFile   string

	LiveRefreshRate    time.Duration
	PNRRefreshRate     time.Duration
	DelayAlertMinutes  int
	MaxConcurrentPolls int

	MetricsAddr string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	FirebaseServiceAccount string
}

// Load reads .env (when present) and then the RAILTRACK_* environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	cfg := &Config{
		Environment:            defaultEnvironment,
		LiveRefreshRate:        defaultLiveRefreshRate,
		PNRRefreshRate:         defaultPNRRefreshRate,
		DelayAlertMinutes:      defaultDelayAlertMinutes,
		MaxConcurrentPolls:     defaultMaxConcurrentPolls,
		JWTIssuer:              defaultJWTIssuer,
		JWTAudience:            defaultJWTAudience,
		MetricsAddr:            env["RAILTRACK_METRICS_ADDR"],
		JWTSecret:              env["RAILTRACK_JWT_SECRET"],
		TripsFile:              env["RAILTRACK_TRIPS_FILE"],
		FirebaseServiceAccount: env["RAILTRACK_FIREBASE_SERVICE_ACCOUNT"],
	}

	if env["RAILTRACK_ENV"] != "" {
		cfg.Environment = env["RAILTRACK_ENV"]
	}

	apiURL, ok := apiURLs[cfg.Environment]
	if !ok {
		return nil, fmt.Errorf("unknown RAILTRACK_ENV %q", cfg.Environment)
	}
	cfg.APIURL = apiURL
	if env["RAILTRACK_API_URL"] != "" {
		cfg.APIURL = env["RAILTRACK_API_URL"]
	}

	cfg.SessionFile = env["RAILTRACK_SESSION_FILE"]
	if cfg.SessionFile == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		cfg.SessionFile = filepath.Join(configDir, "railtrack", "session.yaml")
	}

	var err error
	if cfg.LiveRefreshRate, err = durationFromEnv(env, "RAILTRACK_LIVE_REFRESH", cfg.LiveRefreshRate); err != nil {
		return nil, err
	}
	if cfg.PNRRefreshRate, err = durationFromEnv(env, "RAILTRACK_PNR_REFRESH", cfg.PNRRefreshRate); err != nil {
		return nil, err
	}
	if cfg.DelayAlertMinutes, err = intFromEnv(env, "RAILTRACK_DELAY_ALERT_MINUTES", cfg.DelayAlertMinutes); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentPolls, err = intFromEnv(env, "RAILTRACK_MAX_CONCURRENT_POLLS", cfg.MaxConcurrentPolls); err != nil {
		return nil, err
	}

	if env["RAILTRACK_JWT_ISSUER"] != "" {
		cfg.JWTIssuer = env["RAILTRACK_JWT_ISSUER"]
	}
	if env["RAILTRACK_JWT_AUDIENCE"] != "" {
		cfg.JWTAudience = env["RAILTRACK_JWT_AUDIENCE"]
	}

	return cfg, nil
}

func durationFromEnv(env map[string]string, key string, def time.Duration) (time.Duration, error) {
	v := env[key]
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}

	return d, nil
}

func intFromEnv(env map[string]string, key string, def int) (int, error) {
	v := env[key]
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}

	return n, nil
}
