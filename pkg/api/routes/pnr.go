package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/railtrack/railtrack/pkg/bookingstatus"
	"github.com/railtrack/railtrack/pkg/cache"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/railtrack/railtrack/pkg/railapi"
	"github.com/rs/zerolog/log"
)

type PNRSource interface {
	Status(ctx context.Context, pnr string) (*ctdf.PNRStatus, error)
}

type pnrPassenger struct {
	Number        int    `json:"number" groups:"basic"`
	BookingStatus string `json:"bookingStatus" groups:"basic"`
	CurrentStatus string `json:"currentStatus" groups:"basic"`
	CoachPosition *int   `json:"coachPosition,omitempty" groups:"detailed"`

	Parsed   bookingstatus.Summary  `json:"parsed" groups:"basic"`
	Label    string                 `json:"label" groups:"basic"`
	Category bookingstatus.Category `json:"category" groups:"detailed"`
}

type pnrResponse struct {
	PNR               string         `json:"pnr" groups:"basic"`
	TrainNumber       string         `json:"trainNumber" groups:"basic"`
	TrainName         string         `json:"trainName" groups:"basic"`
	JourneyDate       string         `json:"journeyDate" groups:"basic"`
	BoardingPoint     string         `json:"boardingPoint" groups:"basic"`
	BoardingPointName string         `json:"boardingPointName" groups:"detailed"`
	Destination       string         `json:"destination" groups:"basic"`
	DestinationName   string         `json:"destinationName" groups:"detailed"`
	ReservationUpTo   string         `json:"reservationUpTo" groups:"detailed"`
	ClassType         string         `json:"classType" groups:"basic"`
	ChartPrepared     bool           `json:"chartPrepared" groups:"basic"`
	Passengers        []pnrPassenger `json:"passengers" groups:"basic"`
	Stale             bool           `json:"stale" groups:"basic"`
}

func PNRRouter(router fiber.Router, source PNRSource, views cache.ViewStore) {
	router.Get("/:pnr", func(c *fiber.Ctx) error {
		return getPNR(c, source, views)
	})
}

func getPNR(c *fiber.Ctx, source PNRSource, views cache.ViewStore) error {
	pnr := c.Params("pnr")
	if !ctdf.IsValidPNR(pnr) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": railapi.ErrInvalidPNR.Error(),
		})
	}

	ctx := c.UserContext()
	stale := false

	status, err := source.Status(ctx, pnr)
	if err == nil && status != nil {
		if err := views.SetPNRStatus(ctx, pnr, *status); err != nil {
			log.Error().Err(err).Str("pnr", pnr).Msg("Failed to cache PNR status")
		}
	} else {
		if err != nil {
			log.Warn().Err(err).Str("pnr", pnr).Msg("Failed to fetch PNR status, trying cache")
		}

		cached, cacheErr := views.GetPNRStatus(ctx, pnr)
		if cacheErr != nil {
			log.Error().Err(cacheErr).Str("pnr", pnr).Msg("Failed to read cached PNR status")
		}
		if cached == nil {
			return pnrLookupFailed(c, err)
		}

		status = cached
		stale = true
	}

	response, err := newPNRResponse(status)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not build PNR response",
		})
	}
	response.Stale = stale

	groups := []string{"basic"}
	if c.Query("detail") == "full" {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, response)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce PNR status",
		})
	}

	return c.JSON(reduced)
}

func pnrLookupFailed(c *fiber.Ctx, err error) error {
	var apiErr *railapi.APIError

	switch {
	case err == nil:
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find PNR",
		})
	case errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound:
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": apiErr.Message,
		})
	default:
		c.Status(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not fetch PNR status",
		})
	}
}

func newPNRResponse(status *ctdf.PNRStatus) (*pnrResponse, error) {
	response := &pnrResponse{}
	if err := copier.Copy(response, status); err != nil {
		return nil, err
	}

	for i := range response.Passengers {
		passenger := &response.Passengers[i]

		// The current status wins once the chart moves it off the booking status.
		raw := passenger.CurrentStatus
		if raw == "" {
			raw = passenger.BookingStatus
		}
		parsed := bookingstatus.Parse(raw)

		passenger.Parsed = parsed.Summary()
		passenger.Label = bookingstatus.QuotaLabel(raw)
		passenger.Category = bookingstatus.CategoryOf(parsed)
	}

	return response, nil
}
