package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"household-services-api/models"
	"household-services-api/utils"
)

// Protected rejects requests without a valid bearer token and puts the
// caller's userID and role into locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   utils.JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return jwtError(c, nil)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return jwtError(c, nil)
			}

			id, ok := claims["id"].(float64)
			if !ok {
				return jwtError(c, nil)
			}
			role, ok := claims["role"].(string)
			if !ok {
				return jwtError(c, nil)
			}

			c.Locals("userID", uint(id))
			c.Locals("role", models.Role(role))
			return c.Next()
		},
	})
}

// RequireRole allows the request through only when the caller holds one of
// the given roles. Must run after Protected.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerRole, ok := c.Locals("role").(models.Role)
		if !ok {
			return jwtError(c, nil)
		}
		for _, r := range roles {
			if callerRole == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to perform this action",
		})
	}
}

// OptionalUser parses the bearer token when one is present, without rejecting
// anonymous requests. Used where authentication only unlocks extra behavior,
// like the admin review bypass on unverified providers.
func OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return utils.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["id"].(float64); ok {
				c.Locals("userID", uint(id))
			}
			if role, ok := claims["role"].(string); ok {
				c.Locals("role", models.Role(role))
			}
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user's ID from locals.
func CallerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

// CallerRole returns the authenticated user's role from locals.
func CallerRole(c *fiber.Ctx) (models.Role, bool) {
	role, ok := c.Locals("role").(models.Role)
	return role, ok
}

// jwtError handles JWT errors. The message stays the same for malformed,
// tampered and expired tokens.
func jwtError(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
