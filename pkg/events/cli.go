package events

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railtrack/railtrack/pkg/consumer"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/elastic_client"
	"github.com/railtrack/railtrack/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Usage: "listen target for the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					eventsConsumer, err := NewEventsBatchConsumer(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						Connection:      redis_client.QueueConnection,
						QueueName:       QueueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        eventsConsumer,
						StatsAddr:       c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test delay event",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Usage:    "user the event targets",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "delay",
						Value: 25,
						Usage: "delay in minutes",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					publisher, err := NewQueuePublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					view := ctdf.EnrichedTripView{
						TripSummary: ctdf.TripSummary{
							ID:                 "test-trip",
							UserID:             c.String("user"),
							TrainNumber:        "12951",
							TrainName:          "Mumbai Rajdhani",
							SourceStation:      "NDLS",
							DestinationStation: "MMCT",
							Status:             ctdf.TripStatusLive,
							IsLive:             true,
							DelayMinutes:       c.Int("delay"),
							NextStation:        "RTM",
						},
						RunningState: ctdf.RunningStateRunning,
					}

					event, err := ctdf.NewEvent(ctdf.EventTypeTripDelayed, c.String("user"), time.Now(), ctdf.TripEventBody{View: view})
					if err != nil {
						return err
					}

					if err := publisher.Publish(context.Background(), event); err != nil {
						return err
					}

					log.Info().Str("user", c.String("user")).Msg("Published test event")

					return nil
				},
			},
		},
	}
}
