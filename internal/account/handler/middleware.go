package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andrefasa/user-service/internal/apperr"
	"github.com/andrefasa/user-service/pkg/constant"
)

// RequireAuth guards protected routes. It verifies the access token from the
// cookie or Authorization header, resolves it to a live account and attaches
// the id and the sanitized account to the request locals. It performs no
// writes.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	tokenString := c.Cookies(constant.AccessTokenCookie)
	if tokenString == "" {
		tokenString = bearerToken(c.Get(constant.AuthorizationHeader))
	}
	if tokenString == "" {
		return apperr.Unauthorized("missing access token")
	}

	claims, err := h.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return apperr.Wrap(apperr.KindUnauthorized, "invalid access token", err)
	}

	user, err := h.userService.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}

	c.Locals(constant.UserIDLocalsKey, claims.UserID)
	c.Locals(constant.UserLocalsKey, user)

	return c.Next()
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != constant.BearerScheme {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
