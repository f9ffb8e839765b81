package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pixelvault/auth-service/internal/auth/dto"
	"github.com/pixelvault/auth-service/internal/auth/service"
	autherror "github.com/pixelvault/auth-service/internal/errors"
	"github.com/pixelvault/auth-service/pkg/constant"
	"go.uber.org/zap"
)

var validate = validator.New()

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		logger:      logger.Named("auth_handler"),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return badRequest(c, "name, a valid email and a password of at least 6 characters are required")
	}

	if _, err := h.userService.Register(c.UserContext(), input); err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil,
		"User registered successfully. Please check your email to verify your account."))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return badRequest(c, "email and password are required")
	}

	input.DeviceID = c.Get(constant.DeviceIDHeader)
	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	result, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookies(c, result)

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil, "Logged in successfully."))
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")

	if err := h.userService.VerifyEmail(c.UserContext(), token); err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil, "Email verified successfully."))
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	return h.socialLogin(c, h.userService.GoogleLogin)
}

func (h *AuthHandler) FacebookLogin(c *fiber.Ctx) error {
	return h.socialLogin(c, h.userService.FacebookLogin)
}

func (h *AuthHandler) socialLogin(c *fiber.Ctx,
	login func(ctx context.Context, input dto.SocialLoginInput) (*service.LoginResult, error)) error {
	var input dto.SocialLoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return badRequest(c, "token is required")
	}

	input.DeviceID = c.Get(constant.DeviceIDHeader)
	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	result, err := login(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookies(c, result)

	profile := dto.ProfileOutput{
		ID:             result.User.ID,
		Name:           result.User.Name,
		Email:          result.User.Email,
		ProfilePicture: result.User.ProfilePicture,
	}

	return c.Status(fiber.StatusOK).JSON(dto.OK(profile, ""))
}

// Refresh rotates the refresh token presented in the cookie. The device id
// header is required so a token can only be rotated by the device it was
// issued to.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(constant.RefreshTokenCookie)
	if refreshToken == "" {
		status := fiber.StatusUnauthorized
		return c.Status(status).JSON(dto.Fail("no refresh token provided", status))
	}

	deviceID := c.Get(constant.DeviceIDHeader)
	if deviceID == "" {
		return badRequest(c, constant.DeviceIDHeader+" header is required")
	}

	input := dto.RefreshInput{
		RefreshToken: refreshToken,
		DeviceID:     deviceID,
		IPAddress:    c.IP(),
		UserAgent:    string(c.Request().Header.UserAgent()),
	}

	result, err := h.userService.Refresh(c.UserContext(), input)
	if err != nil {
		h.clearSessionCookies(c)
		return h.fail(c, err)
	}

	h.setSessionCookies(c, result)

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil, "Token refreshed."))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.userService.Logout(c.UserContext(), c.Cookies(constant.RefreshTokenCookie)); err != nil {
		return h.fail(c, err)
	}

	h.clearSessionCookies(c)

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil, "Logged out."))
}

func (h *AuthHandler) Check(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.OK(dto.CheckOutput{IsAuthenticated: true}, ""))
}

func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, result *service.LoginResult) {
	c.Cookie(h.tokens.AccessCookie(result.AccessToken))
	if result.RefreshToken != nil {
		c.Cookie(h.tokens.RefreshCookie(result.RefreshToken.Token))
	}
}

func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	c.Cookie(h.tokens.ClearCookie(constant.AccessTokenCookie))
	c.Cookie(h.tokens.ClearCookie(constant.RefreshTokenCookie))
}

// fail maps service errors onto the response envelope. Unexpected errors are
// logged with context and collapsed into a generic 500.
func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	status, msg := statusForError(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(dto.Fail(msg, status))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msg, fiber.StatusBadRequest))
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrAccountLocked),
		errors.Is(err, autherror.ErrEmailNotVerified),
		errors.Is(err, autherror.ErrInvalidAccessToken),
		errors.Is(err, autherror.ErrRefreshTokenNotFound),
		errors.Is(err, autherror.ErrRefreshTokenRevoked),
		errors.Is(err, autherror.ErrRefreshTokenExpired),
		errors.Is(err, autherror.ErrDeviceMismatch),
		errors.Is(err, autherror.ErrInvalidSocialToken):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, autherror.ErrEmailAlreadyInUse),
		errors.Is(err, autherror.ErrInvalidVerificationToken),
		errors.Is(err, autherror.ErrInvalidImageFormat):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, autherror.ErrUserNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, autherror.ErrExternalService):
		return fiber.StatusInternalServerError, err.Error()
	default:
		return fiber.StatusInternalServerError, "an unexpected error occurred"
	}
}
