package handlers

import (
	"errors"
	"log"

	"pizzeria/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for the menu catalog.
type MenuHandler struct {
	repo repositories.MenuRepository
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(repo repositories.MenuRepository) *MenuHandler {
	return &MenuHandler{
		repo: repo,
	}
}

// RegisterRoutes registers the menu routes with the Fiber app.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetMenu)
	menuRoutes.Get("/:id", h.HandleGetMenuItem)
}

// HandleGetMenu returns the full menu.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	menu, err := h.repo.GetAll(c.Context())
	if err != nil {
		log.Printf("Error getting menu: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not retrieve the menu",
			"error":   err.Error(),
		})
	}
	return c.JSON(menu)
}

// HandleGetMenuItem returns a single menu item.
func (h *MenuHandler) HandleGetMenuItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Menu item id must be a number",
		})
	}

	item, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrMenuItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No such menu item",
			})
		}
		log.Printf("Error getting menu item %d: %v", id, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not retrieve the menu item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}
