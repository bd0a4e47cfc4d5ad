package tracker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/config"
	"github.com/railtrack/railtrack/pkg/database"
	"github.com/railtrack/railtrack/pkg/events"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/railtrack/railtrack/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"
)

const apiSyncInterval = 5 * time.Minute

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "tracker",
		Usage: "Tracks live trips and watched PNRs",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the live trip tracker and PNR watcher",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "trips-file",
						Usage: "YAML file of trips, alert rules and PNRs to follow",
					},
					&cli.BoolFlag{
						Name:  "from-api",
						Usage: "follow the signed in user's trips, resyncing every 5 minutes",
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "archive live trip views to MongoDB",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					tripsFile := c.String("trips-file")
					if tripsFile == "" {
						tripsFile = cfg.TripsFile
					}
					if tripsFile == "" && !c.Bool("from-api") {
						return errors.New("either --trips-file or --from-api is required")
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					publisher, err := events.NewQueuePublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					client := railapi.NewClient(cfg.APIURL, railapi.NewFileTokenStore(cfg.SessionFile))
					store := cache.NewRedisViewCache(redis_client.Client, cache.DefaultExpiration)

					collector := NewCollector(cfg.LiveRefreshRate, cfg.PNRRefreshRate)
					if cfg.MetricsAddr != "" {
						collector.Serve(cfg.MetricsAddr)
					}

					live := &LiveTripTracker{
						Source:             client.Trains,
						Store:              store,
						Publisher:          publisher,
						Metrics:            collector,
						RefreshRate:        cfg.LiveRefreshRate,
						DelayAlertMinutes:  cfg.DelayAlertMinutes,
						MaxConcurrentPolls: cfg.MaxConcurrentPolls,
					}
					watcher := &PNRWatcher{
						Source:             client.PNR,
						Store:              store,
						Publisher:          publisher,
						Metrics:            collector,
						RefreshRate:        cfg.PNRRefreshRate,
						MaxConcurrentPolls: cfg.MaxConcurrentPolls,
					}

					if c.Bool("archive") {
						if err := database.Connect(); err != nil {
							return err
						}
						live.Archive = database.DefaultRepository()
					}

					fileTracking := &TrackingFile{}
					if tripsFile != "" {
						fileTracking, err = LoadTrackingFile(tripsFile)
						if err != nil {
							return err
						}
						if err := fileTracking.Apply(live, watcher); err != nil {
							return err
						}
					}

					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer stop()

					var wg conc.WaitGroup
					wg.Go(func() { live.Run(ctx) })
					wg.Go(func() { watcher.Run(ctx) })

					if c.Bool("from-api") {
						rules := fileTracking.RulesByTrip()

						wg.Go(func() {
							runEvery(ctx, apiSyncInterval, func() {
								tracking, err := TrackingFromAPI(ctx, client.Trips, rules)
								if err != nil {
									log.Error().Err(err).Msg("Failed to sync trips from API")
									return
								}
								if err := tracking.Apply(live, watcher); err != nil {
									log.Error().Err(err).Msg("Failed to apply synced trips")
									return
								}
								log.Info().Int("trips", len(tracking.Trips)).Int("pnrs", len(tracking.PNRs)).Msg("Synced trips from API")
							})
						})
					}

					wg.Wait()
					log.Info().Msg("Tracker stopped")

					return nil
				},
			},
			{
				Name:      "check-rule",
				Usage:     "compile an alert rule expression",
				ArgsUsage: "<expression>",
				Action: func(c *cli.Context) error {
					_, err := CompileRule(RuleDefinition{Name: "check", Expression: c.Args().First()})
					if err != nil {
						return err
					}

					log.Info().Str("expression", c.Args().First()).Msg("Rule compiles")
					return nil
				},
			},
		},
	}
}
