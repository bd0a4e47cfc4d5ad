package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railtrack/railtrack/pkg/bookingstatus"
)

type bookingStatusResponse struct {
	Raw        string                 `json:"raw"`
	Display    string                 `json:"display"`
	Label      string                 `json:"label"`
	QuotaLabel string                 `json:"quotaLabel"`
	Category   bookingstatus.Category `json:"category"`
	Parsed     bookingstatus.Summary  `json:"parsed"`
}

func getBookingStatus(c *fiber.Ctx) error {
	raw := c.Query("status")
	if raw == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A status must be given",
		})
	}

	parsed := bookingstatus.Parse(raw)

	return c.JSON(bookingStatusResponse{
		Raw:        raw,
		Display:    parsed.String(),
		Label:      bookingstatus.Label(parsed.Kind()),
		QuotaLabel: bookingstatus.QuotaLabel(raw),
		Category:   bookingstatus.CategoryOf(parsed),
		Parsed:     parsed.Summary(),
	})
}

func BookingStatusRouter(router fiber.Router) {
	router.Get("/", getBookingStatus)
}
