package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/database"
	"github.com/railtrack/railtrack/pkg/liveprogress"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const tripsPageSize = 50

var tripStatusFlag = &cli.StringFlag{
	Name:  "status",
	Value: "all",
	Usage: "only trips with this status (all, upcoming, live, completed, cancelled)",
}

func registerTripsCLI() *cli.Command {
	return &cli.Command{
		Name:  "trips",
		Usage: "Manage saved trips",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved trips",
				Flags: []cli.Flag{tripStatusFlag},
				Action: func(c *cli.Context) error {
					trips, err := fetchTripSummaries(c.Context, c.String("status"))
					if err != nil {
						return err
					}

					return WriteTripList(c.App.Writer, trips)
				},
			},
			{
				Name:  "export",
				Usage: "export saved trips as csv or yaml",
				Flags: []cli.Flag{
					tripStatusFlag,
					&cli.StringFlag{
						Name:  "format",
						Value: "csv",
						Usage: "csv or yaml",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "file to write to instead of stdout",
					},
				},
				Action: func(c *cli.Context) error {
					trips, err := fetchTripSummaries(c.Context, c.String("status"))
					if err != nil {
						return err
					}

					var w io.Writer = c.App.Writer
					if output := c.String("output"); output != "" {
						file, err := os.Create(output)
						if err != nil {
							return err
						}
						defer file.Close()
						w = file
					}

					return ExportTrips(w, c.String("format"), trips)
				},
			},
			{
				Name:  "save-offline",
				Usage: "store a copy of the saved trips in MongoDB",
				Action: func(c *cli.Context) error {
					client, _, err := newClient()
					if err != nil {
						return err
					}

					trips, err := fetchTrips(c.Context, client.Trips, "all")
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := database.DefaultRepository().SaveOfflineTrips(c.Context, trips); err != nil {
						return err
					}

					log.Info().Int("trips", len(trips)).Msg("Saved offline trips")
					return nil
				},
			},
		},
	}
}

func fetchTripSummaries(ctx context.Context, status string) ([]ctdf.TripSummary, error) {
	client, _, err := newClient()
	if err != nil {
		return nil, err
	}

	trips, err := fetchTrips(ctx, client.Trips, status)
	if err != nil {
		return nil, err
	}

	summaries := make([]ctdf.TripSummary, 0, len(trips))
	for i := range trips {
		summary, err := ctdf.NewTripSummary(&trips[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

type tripLister interface {
	List(ctx context.Context, status string, page int, limit int) (*railapi.Page[ctdf.Trip], error)
}

func fetchTrips(ctx context.Context, lister tripLister, status string) ([]ctdf.Trip, error) {
	var trips []ctdf.Trip

	for page := 1; ; page++ {
		result, err := lister.List(ctx, status, page, tripsPageSize)
		if err != nil {
			return nil, err
		}

		trips = append(trips, result.Items...)

		if !result.Pagination.HasMore || len(result.Items) == 0 {
			return trips, nil
		}
	}
}

func WriteTripList(w io.Writer, trips []ctdf.TripSummary) error {
	for _, trip := range trips {
		delay := liveprogress.FormatDelay(trip.DelayMinutes)

		if _, err := fmt.Fprintf(w, "%-10s %-6s %-24s %s → %s  %s  %-9s %s\n",
			trip.JourneyDate,
			trip.TrainNumber,
			trip.TrainName,
			trip.SourceStation,
			trip.DestinationStation,
			trip.DepartureTime,
			trip.Status,
			delay,
		); err != nil {
			return err
		}
	}

	return nil
}

func ExportTrips(w io.Writer, format string, trips []ctdf.TripSummary) error {
	switch format {
	case "csv":
		return gocsv.Marshal(&trips, w)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(trips); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
