// Package commands holds the user facing CLI commands that talk to the
// RailTrack backend.
package commands

import (
	"github.com/railtrack/railtrack/pkg/config"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		registerAuthCLI(),
		registerPNRCLI(),
		registerTrainsCLI(),
		registerTripsCLI(),
	}
}

func newClient() (*railapi.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	return railapi.NewClient(cfg.APIURL, railapi.NewFileTokenStore(cfg.SessionFile)), cfg, nil
}
