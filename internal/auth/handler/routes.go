package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, auth *AuthHandler, user *UserHandler) {
	authGroup := app.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Get("/verify-email", auth.VerifyEmail)
	authGroup.Post("/google-login", auth.GoogleLogin)
	authGroup.Post("/facebook-login", auth.FacebookLogin)
	authGroup.Post("/refresh", auth.Refresh)
	authGroup.Post("/logout", auth.Logout)
	authGroup.Get("/check", auth.RequireAuth, auth.Check)

	userGroup := app.Group("/user", auth.RequireAuth)
	userGroup.Get("/profile", user.GetProfile)
	userGroup.Post("/profile/picture", user.UpdateProfilePicture)
}
