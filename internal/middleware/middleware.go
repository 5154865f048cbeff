package middleware

import (
	"context"
	"strings"

	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	// UserChecker reports whether a token's subject still has an account.
	UserChecker interface {
		ExistsByID(ctx context.Context, id string) (bool, error)
	}

	middleware struct {
		users        UserChecker
		allowOrigins string
	}
)

func NewMiddleware(users UserChecker, allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{users: users, allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// AuthMiddleware accepts "Authorization: Bearer <access token>" and stores the
// caller in c.Locals("user_id") and c.Locals("role").
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		userID, role, err := jwtService.GetUserIDByToken(token, domain.TokenTypeAccess)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		if m.users != nil {
			exists, err := m.users.ExistsByID(c.Context(), userID)
			if err != nil {
				return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTokenInvalid, err)
			}
			if !exists {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
			}
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}
