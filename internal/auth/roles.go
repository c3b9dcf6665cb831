package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// RequireAdmin ensures the actor holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if actor.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
