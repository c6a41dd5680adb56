package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wigglew/wigglew_auth/internal/identity"
)

// RegisterAuthRoutes wires the authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *identity.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/otp/send", h.SendOTP)
	group.Post("/otp/verify", h.VerifyOTP)
	group.Post("/password/reset", h.ChangePassword)
}
