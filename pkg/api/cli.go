package api

import (
	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/config"
	"github.com/railtrack/railtrack/pkg/database"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/railtrack/railtrack/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					client := railapi.NewClient(cfg.APIURL, railapi.NewFileTokenStore(cfg.SessionFile))

					server := &Server{
						PNR:         client.PNR,
						Views:       cache.NewRedisViewCache(redis_client.Client, cache.DefaultExpiration),
						PushTargets: database.DefaultRepository(),
					}

					if cfg.JWTSecret != "" {
						server.Auth, err = EnsureValidToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
						if err != nil {
							return err
						}
					} else {
						log.Warn().Msg("RAILTRACK_JWT_SECRET is not set, account routes are disabled")
					}

					log.Info().Str("listen", c.String("listen")).Str("api", cfg.APIURL).Msg("Starting web API")

					return server.Listen(c.String("listen"))
				},
			},
		},
	}
}
