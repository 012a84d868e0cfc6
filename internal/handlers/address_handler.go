package handlers

import (
	"pizzeria/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler exposes the address acquisition flow and the session's
// user state.
type AddressHandler struct{}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler() *AddressHandler {
	return &AddressHandler{}
}

// RegisterRoutes registers the address and user routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/address", h.HandleGetAddressState)
	router.Post("/address", h.HandleRequestAddress)
	router.Post("/user", h.HandleSetUsername)
}

// HandleGetAddressState returns the session's current address state.
func (h *AddressHandler) HandleGetAddressState(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	return c.JSON(session.Address.State())
}

// HandleRequestAddress starts (or restarts) an address acquisition attempt.
// The resolution completes asynchronously; clients poll GET /address.
func (h *AddressHandler) HandleRequestAddress(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	session.Address.RequestAddress()
	return c.Status(fiber.StatusAccepted).JSON(session.Address.State())
}

// HandleSetUsername records the customer's display name for the session.
func (h *AddressHandler) HandleSetUsername(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if body.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username is required",
		})
	}

	session := middleware.SessionFromCtx(c)
	session.Address.SetUsername(body.Username)
	return c.JSON(session.Address.State())
}
