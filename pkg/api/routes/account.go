package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
)

const UserIDLocal = "account_userid"

type PushTargetWriter interface {
	UpsertPushTarget(ctx context.Context, target ctdf.UserPushNotificationTarget) error
}

func AccountRouter(router fiber.Router, targets PushTargetWriter) {
	router.Post("/notificationtoken", func(c *fiber.Ctx) error {
		return postNotificationToken(c, targets)
	})
}

func postNotificationToken(c *fiber.Ctx, targets PushTargetWriter) error {
	var requestBody struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID, _ := c.Locals(UserIDLocal).(string)
	if userID == "" {
		c.Status(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"error": "No userid set",
		})
	}

	if requestBody.Token == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "No token set",
		})
	}

	userPushNotificationTarget := ctdf.UserPushNotificationTarget{
		UserID:                userID,
		PushNotificationToken: requestBody.Token,
		ModificationDateTime:  time.Now(),
	}

	if err := targets.UpsertPushTarget(c.UserContext(), userPushNotificationTarget); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to store push notification target")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not store notification token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
