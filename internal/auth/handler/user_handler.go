package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixelvault/auth-service/internal/auth/dto"
	"github.com/pixelvault/auth-service/internal/auth/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.Named("user_handler"),
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), sessionEmail(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.OK(profile, ""))
}

func (h *UserHandler) UpdateProfilePicture(c *fiber.Ctx) error {
	var input dto.UpdateProfilePictureInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}

	if err := h.userService.UpdateProfilePicture(c.UserContext(), sessionEmail(c), input.ProfilePicture); err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.OK(nil, "Profile picture updated successfully."))
}

func (h *UserHandler) fail(c *fiber.Ctx, err error) error {
	status, msg := statusForError(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(dto.Fail(msg, status))
}
