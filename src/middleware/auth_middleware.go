package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
)

// UserLocal is the c.Locals key the authenticated user is stored under.
const UserLocal = "user"

// ProtectRoute returns a middleware that checks for a valid bearer token,
// loads the user and attaches it to the request context. When roles are
// given, users outside them get a 403.
func ProtectRoute(users store.UserStore, jwtSecret string, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - No token provided"))
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token format"))
		}

		userID, err := lib.VerifyJWT(token, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("User not found"))
		}

		if len(roles) > 0 && !roleAllowed(user.Role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Forbidden - Insufficient permissions"))
		}

		user.Sanitize()
		c.Locals(UserLocal, *user)

		return c.Next()
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUser pulls the authenticated user attached by ProtectRoute.
func CurrentUser(c *fiber.Ctx) models.User {
	return c.Locals(UserLocal).(models.User)
}
