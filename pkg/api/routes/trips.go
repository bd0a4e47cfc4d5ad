package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/liveprogress"
)

type enrichRequest struct {
	Trip       ctdf.TripSummary      `json:"trip"`
	LiveStatus *ctdf.LiveTrainStatus `json:"liveStatus"`
}

func TripsRouter(router fiber.Router, views cache.ViewStore) {
	router.Get("/:id/view", func(c *fiber.Ctx) error {
		return getTripView(c, views)
	})
	router.Post("/:id/enrich", enrichTrip)
}

func getTripView(c *fiber.Ctx, views cache.ViewStore) error {
	tripID := c.Params("id")

	view, err := views.GetTripView(c.UserContext(), tripID)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not read trip view",
		})
	}

	if view == nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find a view for this trip",
		})
	}

	return c.JSON(view)
}

func enrichTrip(c *fiber.Ctx) error {
	var requestBody enrichRequest
	if err := c.BodyParser(&requestBody); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tripID := c.Params("id")
	if requestBody.Trip.ID == "" {
		requestBody.Trip.ID = tripID
	}
	if requestBody.Trip.ID != tripID {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Trip id does not match the path",
		})
	}

	return c.JSON(liveprogress.Enrich(requestBody.Trip, requestBody.LiveStatus))
}
