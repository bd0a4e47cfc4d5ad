package commands

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/railtrack/railtrack/pkg/bookingstatus"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/util"
	"github.com/urfave/cli/v2"
)

func registerPNRCLI() *cli.Command {
	return &cli.Command{
		Name:  "pnr",
		Usage: "Check PNR and booking statuses",
		Subcommands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "fetch the status of one or more PNRs",
				ArgsUsage: "<pnr> [pnr...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "dump the full response",
					},
				},
				Action: func(c *cli.Context) error {
					pnrs := util.RemoveDuplicateStrings(c.Args().Slice(), nil)
					if len(pnrs) == 0 {
						return cli.Exit("at least one PNR is required", 1)
					}

					client, _, err := newClient()
					if err != nil {
						return err
					}

					if len(pnrs) == 1 {
						status, err := client.PNR.Status(c.Context, pnrs[0])
						if err != nil {
							return err
						}
						if c.Bool("raw") {
							_, err = fmt.Fprintf(c.App.Writer, "%# v\n", pretty.Formatter(status))
							return err
						}
						return WritePNRStatus(c.App.Writer, status)
					}

					results, err := client.PNR.CheckMultiple(c.Context, pnrs)
					if err != nil {
						return err
					}
					for _, result := range results {
						if !result.Success || result.Data == nil {
							fmt.Fprintf(c.App.Writer, "%s: %s\n\n", result.PNR, result.Error)
							continue
						}
						if err := WritePNRStatus(c.App.Writer, result.Data); err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer)
					}

					return nil
				},
			},
			{
				Name:      "parse",
				Usage:     "classify a booking status token offline",
				ArgsUsage: "[status]",
				Action: func(c *cli.Context) error {
					var raw *string
					if c.NArg() > 0 {
						first := c.Args().First()
						raw = &first
					}

					return WriteBookingStatus(c.App.Writer, raw)
				},
			},
		},
	}
}

func WritePNRStatus(w io.Writer, status *ctdf.PNRStatus) error {
	chart := "not prepared"
	if status.ChartPrepared {
		chart = "prepared"
	}

	fmt.Fprintf(w, "PNR %s  %s %s  %s\n", status.PNR, status.TrainNumber, status.TrainName, status.JourneyDate)
	fmt.Fprintf(w, "%s → %s  class %s  chart %s\n", status.BoardingPoint, status.Destination, status.ClassType, chart)

	for _, passenger := range status.Passengers {
		raw := passenger.CurrentStatus
		if raw == "" {
			raw = passenger.BookingStatus
		}
		parsed := bookingstatus.Parse(raw)

		if _, err := fmt.Fprintf(w, "  %d. %-14s %-18s (booked %s)\n", passenger.Number, parsed.String(), bookingstatus.QuotaLabel(raw), passenger.BookingStatus); err != nil {
			return err
		}
	}

	return nil
}

// WriteBookingStatus describes raw, which is nil when no status was given.
func WriteBookingStatus(w io.Writer, raw *string) error {
	parsed := bookingstatus.ParseNullable(raw)

	label := bookingstatus.Label(parsed.Kind())
	if raw != nil {
		label = bookingstatus.QuotaLabel(*raw)
	}

	_, err := fmt.Fprintf(w, "%s\n  kind: %s\n  label: %s\n  category: %s\n  summary: %# v\n",
		parsed.String(),
		parsed.Kind(),
		label,
		bookingstatus.CategoryOf(parsed),
		pretty.Formatter(parsed.Summary()),
	)
	return err
}
