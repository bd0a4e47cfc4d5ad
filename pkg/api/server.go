package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railtrack/railtrack/pkg/api/routes"
	"github.com/railtrack/railtrack/pkg/cache"
)

// Server holds what the routes read from and write to.
type Server struct {
	PNR         routes.PNRSource
	Views       cache.ViewStore
	PushTargets routes.PushTargetWriter

	// Auth guards the account routes.
	Auth fiber.Handler
}

func (s *Server) App() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.BookingStatusRouter(group.Group("/bookingstatus"))
	routes.PNRRouter(group.Group("/pnr"), s.PNR, s.Views)
	routes.TripsRouter(group.Group("/trips"), s.Views)
	routes.AccountRouter(group.Group("/account", s.auth()), s.PushTargets)

	return webApp
}

func (s *Server) auth() fiber.Handler {
	if s.Auth != nil {
		return s.Auth
	}

	return func(c *fiber.Ctx) error {
		c.Status(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"error": "Account routes are disabled",
		})
	}
}

func (s *Server) Listen(listen string) error {
	return s.App().Listen(listen)
}
