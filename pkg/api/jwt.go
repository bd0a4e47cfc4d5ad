package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/railtrack/railtrack/pkg/api/routes"
)

// EnsureValidToken checks the bearer token is an HS256 JWT signed with
// secret and stores its subject as the request user.
func EnsureValidToken(secret string, issuer string, audience string) (fiber.Handler, error) {
	if secret == "" {
		return nil, errors.New("a JWT secret is required")
	}

	keyFunc := func(context.Context) (interface{}, error) {
		return []byte(secret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return func(c *fiber.Ctx) error {
		jwtToken, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || jwtToken == "" {
			c.Status(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Authorization header is required",
			})
		}

		claimsI, err := jwtValidator.ValidateToken(c.UserContext(), jwtToken)
		if err != nil {
			c.Status(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Invalid auth token",
			})
		}

		claims := claimsI.(*validator.ValidatedClaims)
		c.Locals(routes.UserIDLocal, claims.RegisteredClaims.Subject)

		return c.Next()
	}, nil
}
