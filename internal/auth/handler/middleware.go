package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixelvault/auth-service/internal/auth/dto"
	"github.com/pixelvault/auth-service/pkg/constant"
)

// RequireAuth resolves the session for protected routes. A valid access-token
// cookie wins; otherwise exactly one silent-refresh attempt is made against
// the refresh-token cookie. If that fails too, both cookies are cleared and
// the request is rejected.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	accessToken := c.Cookies(constant.AccessTokenCookie)
	if email, err := h.tokens.ValidateAccessToken(accessToken); err == nil {
		c.Locals(constant.LocalsEmail, email)
		return c.Next()
	}

	if refreshToken := c.Cookies(constant.RefreshTokenCookie); refreshToken != "" {
		newAccessToken, email, err := h.userService.SilentRefresh(
			c.UserContext(), refreshToken, c.Get(constant.DeviceIDHeader))
		if err == nil {
			c.Cookie(h.tokens.AccessCookie(newAccessToken))
			c.Locals(constant.LocalsEmail, email)

			return c.Next()
		}
	}

	h.clearSessionCookies(c)
	status := fiber.StatusUnauthorized

	return c.Status(status).JSON(dto.Fail("user not authenticated", status))
}

// sessionEmail returns the email RequireAuth resolved for this request.
func sessionEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(constant.LocalsEmail).(string)

	return email
}
