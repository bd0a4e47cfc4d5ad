package notify

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railtrack/railtrack/pkg/config"
	"github.com/railtrack/railtrack/pkg/consumer"
	"github.com/railtrack/railtrack/pkg/database"
	"github.com/railtrack/railtrack/pkg/events"
	"github.com/railtrack/railtrack/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "Provides the notification system",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run notify server",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print notifications instead of sending them",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					var sender Sender = LogSender{}
					if !c.Bool("dry-run") && cfg.FirebaseServiceAccount != "" {
						if err := database.Connect(); err != nil {
							return err
						}

						pushManager, err := NewPushManager(context.Background(), cfg.FirebaseServiceAccount, database.DefaultRepository())
						if err != nil {
							return err
						}
						sender = pushManager
					} else {
						log.Warn().Msg("No firebase service account set, notifications will only be logged")
					}

					redisConsumer := consumer.RedisConsumer{
						Connection:      redis_client.QueueConnection,
						QueueName:       events.NotifyQueueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewNotifyBatchConsumer(sender),
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

					return nil
				},
			},
		},
	}
}
