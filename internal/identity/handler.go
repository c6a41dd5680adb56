package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the authentication workflows over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs an authentication HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type passwordResetRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// Register handles user onboarding.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.service.Register(c.UserContext(), RegisterInput{FullName: req.FullName, Phone: req.Phone, Password: req.Password})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusCreated
	if !resp.RequestSuccess {
		status = http.StatusConflict
	}
	return c.Status(status).JSON(resp)
}

// Login authenticates a password and returns a token once verified.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.service.Login(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusOK
	if !resp.RequestSuccess {
		status = http.StatusUnauthorized
	}
	return c.Status(status).JSON(resp)
}

// SendOTP dispatches a verification code. Always 200 with a textual outcome;
// delivery problems never surface as errors here.
func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	msg, err := h.service.SendOTP(c.UserContext(), req.Phone)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": msg})
}

// VerifyOTP checks a submitted code and marks the phone verified on match.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.service.VerifyOTP(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, ErrNotFound.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// ChangePassword resets the password after an OTP check.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.service.ChangePassword(c.UserContext(), req.Phone, req.Password, req.OTP)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusOK
	if !resp.RequestSuccess {
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(resp)
}
