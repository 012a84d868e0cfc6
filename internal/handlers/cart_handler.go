package handlers

import (
	"errors"
	"log"

	"pizzeria/internal/middleware"
	"pizzeria/internal/repositories"
	"pizzeria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	menuRepo repositories.MenuRepository
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(menuRepo repositories.MenuRepository) *CartHandler {
	return &CartHandler{
		menuRepo: menuRepo,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:pizzaID", h.HandleRemoveItem)
	cartRoutes.Post("/items/:pizzaID/increase", h.HandleIncreaseQuantity)
	cartRoutes.Post("/items/:pizzaID/decrease", h.HandleDecreaseQuantity)
}

func cartResponse(cart *services.CartStore) fiber.Map {
	return fiber.Map{
		"items":         cart.Items(),
		"totalQuantity": cart.TotalQuantity(),
		"totalPrice":    cart.TotalPrice(),
	}
}

// HandleGetCart returns the session's cart with its derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	return c.JSON(cartResponse(session.Cart))
}

// HandleClearCart empties the session's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	session.Cart.Clear()
	return c.JSON(cartResponse(session.Cart))
}

// HandleAddItem adds a menu item to the cart with quantity 1. Sold-out
// pizzas and pizzas already in the cart are rejected.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var body struct {
		PizzaID int `json:"pizzaId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.menuRepo.GetByID(c.Context(), body.PizzaID)
	if err != nil {
		if errors.Is(err, repositories.ErrMenuItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No such menu item",
			})
		}
		log.Printf("Error looking up menu item %d: %v", body.PizzaID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not look up the menu item",
			"error":   err.Error(),
		})
	}
	if item.SoldOut {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This pizza is sold out",
		})
	}

	if err := session.Cart.AddItem(item.ID, item.Name, item.UnitPrice); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This pizza is already in the cart; change its quantity instead",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(session.Cart))
}

// HandleRemoveItem deletes a cart line. Removing an absent line succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	pizzaID, err := c.ParamsInt("pizzaID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Pizza id must be a number",
		})
	}
	session.Cart.RemoveItem(pizzaID)
	return c.JSON(cartResponse(session.Cart))
}

// HandleIncreaseQuantity adds one to a cart line's quantity.
func (h *CartHandler) HandleIncreaseQuantity(c *fiber.Ctx) error {
	return h.changeQuantity(c, (*services.CartStore).IncreaseQuantity)
}

// HandleDecreaseQuantity subtracts one from a cart line's quantity; the
// line disappears when it reaches zero.
func (h *CartHandler) HandleDecreaseQuantity(c *fiber.Ctx) error {
	return h.changeQuantity(c, (*services.CartStore).DecreaseQuantity)
}

func (h *CartHandler) changeQuantity(c *fiber.Ctx, change func(*services.CartStore, int) error) error {
	session := middleware.SessionFromCtx(c)
	pizzaID, err := c.ParamsInt("pizzaID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Pizza id must be a number",
		})
	}
	if err := change(session.Cart, pizzaID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "This pizza is not in the cart",
		})
	}
	return c.JSON(cartResponse(session.Cart))
}
