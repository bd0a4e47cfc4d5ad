package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/liveprogress"
	"github.com/railtrack/railtrack/pkg/util"
	"github.com/urfave/cli/v2"
)

func registerTrainsCLI() *cli.Command {
	return &cli.Command{
		Name:  "trains",
		Usage: "Look up trains",
		Subcommands: []*cli.Command{
			{
				Name:      "live",
				Usage:     "show the live running status of a train",
				ArgsUsage: "<train number> [yyyy-mm-dd]",
				Action: func(c *cli.Context) error {
					trainNumber := util.NormaliseCode(c.Args().Get(0))
					if trainNumber == "" {
						return cli.Exit("a train number is required", 1)
					}

					date, err := util.ParseJourneyDate(c.Args().Get(1), time.Now())
					if err != nil {
						return fmt.Errorf("invalid journey date: %w", err)
					}

					client, _, err := newClient()
					if err != nil {
						return err
					}

					status, err := client.Trains.LiveStatus(c.Context, trainNumber, util.JourneyDate(date))
					if err != nil {
						return err
					}
					if status == nil {
						_, err = fmt.Fprintf(c.App.Writer, "No live status for %s on %s\n", trainNumber, util.JourneyDate(date))
						return err
					}

					return WriteLiveStatus(c.App.Writer, status)
				},
			},
			{
				Name:      "search",
				Usage:     "search trains by number or name",
				ArgsUsage: "<query>",
				Action: func(c *cli.Context) error {
					client, _, err := newClient()
					if err != nil {
						return err
					}

					results, err := client.Trains.Search(c.Context, c.Args().First(), 1, 20)
					if err != nil {
						return err
					}

					for _, train := range results.Items {
						fmt.Fprintf(c.App.Writer, "%-6s %-30s %s → %s\n", train.TrainNumber, train.TrainName, train.SourceStation, train.DestinationStation)
					}
					return nil
				},
			},
		},
	}
}

func WriteLiveStatus(w io.Writer, status *ctdf.LiveTrainStatus) error {
	delay := liveprogress.FormatDelay(status.DelayMinutes)
	if delay == "" {
		delay = "on time"
	}

	_, err := fmt.Fprintf(w, "%s %s  %s  %s\n  at %s, next %s (eta %s)  progress %d%%\n",
		status.TrainNumber,
		status.TrainName,
		status.Status,
		delay,
		status.CurrentStation,
		status.NextStation,
		status.ETANextStation,
		liveprogress.Progress(status.Status),
	)
	return err
}
