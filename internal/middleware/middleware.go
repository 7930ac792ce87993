package middleware

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/pkg/jwt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

type (
	Middleware interface {
		CORSMiddleware(origin string) fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RoleMiddleware(roles ...string) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware(origin string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origin != "*",
	})
}

// AuthMiddleware rejects the request unless it carries a valid token.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := extractIdentity(c, jwtService)
		if err != nil {
			return presenters.HandleError(c, err, domain.MessageTokenInvalid)
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when a valid token is present
// and continues anonymously otherwise.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, err := extractIdentity(c, jwtService); err == nil {
			setIdentity(c, identity)
		}
		return c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware.
func (m *middleware) RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageNotAuthenticated)
		}
		if !slices.Contains(roles, identity.Role) {
			return presenters.HandleError(c, domain.ErrUserNotAllowed, domain.MessageUserNotAllowed)
		}
		return c.Next()
	}
}

func extractIdentity(c *fiber.Ctx, jwtService jwt.JWTService) (domain.Identity, error) {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return domain.Identity{}, domain.ErrTokenNotFound
	}
	return jwtService.GetIdentityByToken(strings.TrimSpace(token))
}

func setIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(LocalUserID, identity.UserID)
	c.Locals(LocalEmail, identity.Email)
	c.Locals(LocalRole, identity.Role)
}

// GetIdentity reads the identity attached by the auth middlewares.
func GetIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return domain.Identity{}, false
	}
	email, _ := c.Locals(LocalEmail).(string)
	role, _ := c.Locals(LocalRole).(string)
	return domain.Identity{UserID: userID, Email: email, Role: role}, true
}
