package commands

import (
	"errors"
	"fmt"

	"github.com/kr/pretty"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func registerAuthCLI() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the stored RailTrack session",
		Subcommands: []*cli.Command{
			{
				Name:  "login",
				Usage: "log in and store the session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "phone",
						Usage:    "account phone number",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "account password",
						EnvVars: []string{"RAILTRACK_PASSWORD"},
					},
				},
				Action: func(c *cli.Context) error {
					if c.String("password") == "" {
						return errors.New("a password is required, set --password or RAILTRACK_PASSWORD")
					}

					client, cfg, err := newClient()
					if err != nil {
						return err
					}

					auth, err := client.Auth.Login(c.Context, ctdf.LoginInput{
						Phone:    c.String("phone"),
						Password: c.String("password"),
					})
					if err != nil {
						return err
					}

					log.Info().Str("user", auth.User.ID).Str("session", cfg.SessionFile).Msg("Logged in")
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "log out and clear the stored session",
				Action: func(c *cli.Context) error {
					client, _, err := newClient()
					if err != nil {
						return err
					}

					return client.Auth.Logout(c.Context)
				},
			},
			{
				Name:  "me",
				Usage: "show the signed in user",
				Action: func(c *cli.Context) error {
					client, _, err := newClient()
					if err != nil {
						return err
					}

					user, err := client.Auth.Me(c.Context)
					if err != nil {
						return err
					}

					_, err = fmt.Fprintf(c.App.Writer, "%# v\n", pretty.Formatter(user))
					return err
				},
			},
		},
	}
}
