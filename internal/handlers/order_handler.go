package handlers

import (
	"errors"
	"log"

	"pizzeria/internal/middleware"
	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
	"pizzeria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order submission and tracking.
type OrderHandler struct {
	orders   *services.OrderService
	tracking *services.TrackingService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderService, tracking *services.TrackingService) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		tracking: tracking,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleSubmitOrder)
	orderRoutes.Get("/:id", h.HandleTrackOrder)
	orderRoutes.Patch("/:id/priority", h.HandleUpgradeToPriority)
}

// HandleSubmitOrder runs the submission workflow against the session's
// cart. The draft picks up the session's resolved position unless the form
// carries one of its own.
func (h *OrderHandler) HandleSubmitOrder(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var body struct {
		models.OrderForm
		Position *models.Position `json:"position,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	position := body.Position
	if position == nil {
		position = session.Address.State().Position
	}

	order, err := h.orders.Submit(c.Context(), session.Cart, body.OrderForm, position)
	if err != nil {
		var validationErrs services.ValidationErrors
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Your cart is empty. Add a pizza before ordering.",
			})
		case errors.As(err, &validationErrs):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order form is invalid",
				"errors":  validationErrs,
			})
		default:
			log.Printf("Error creating order: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Could not place the order; your cart was kept",
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleTrackOrder returns the delivery-tracking view of an order. The
// session reuses one tracker per order id across polls.
func (h *OrderHandler) HandleTrackOrder(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	orderID := c.Params("id")

	tracker := session.Tracker(h.tracking, orderID)
	view, err := tracker.View(c.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No such order",
			})
		}
		log.Printf("Error tracking order %s: %v", orderID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not retrieve the order",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleUpgradeToPriority flags a placed order for expedited handling.
// Retrying the upgrade is safe.
func (h *OrderHandler) HandleUpgradeToPriority(c *fiber.Ctx) error {
	orderID := c.Params("id")

	order, err := h.orders.UpgradeToPriority(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No such order",
			})
		}
		log.Printf("Error upgrading order %s to priority: %v", orderID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not upgrade the order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}
