package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"library-api/model"
)

// AuthRequired verifies the Authorization bearer token and stores the
// caller's id and role in the request locals. A missing token is a 401,
// a bad or expired one a 403.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "access denied, token missing"})
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		id, ok := claims["id"].(float64)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		role, _ := claims["role"].(string)

		c.Locals("user_id", uint(id))
		c.Locals("user_role", model.Role(role))
		return c.Next()
	}
}

// AdminRequired gates an already-authenticated request on the admin role.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(model.Role)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "no role"})
		}
		switch role {
		case model.RoleAdmin:
			return c.Next()
		case model.RoleUser:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin rights required"})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin rights required"})
		}
	}
}
