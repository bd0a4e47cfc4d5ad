package main

import (
	"os"
	"time"

	"github.com/railtrack/railtrack/pkg/api"
	"github.com/railtrack/railtrack/pkg/commands"
	"github.com/railtrack/railtrack/pkg/events"
	"github.com/railtrack/railtrack/pkg/notify"
	"github.com/railtrack/railtrack/pkg/tracker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("RAILTRACK_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILTRACK_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railtrack",
		Description: "Train journey tracking - runs the tracker, event pipeline and web API and talks to the RailTrack backend",

		Commands: append([]*cli.Command{
			api.RegisterCLI(),
			tracker.RegisterCLI(),
			events.RegisterCLI(),
			notify.RegisterCLI(),
		}, commands.RegisterCLI()...),
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
