package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"unicode"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes order lifecycle events. Implemented by
// pkg/rabbitmq; a nil publisher disables eventing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// https://uibakery.io/regex-library/phone-number
var phoneRegexp = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\(?\d{1,3}?\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)

func isValidPhone(s string) bool {
	if !phoneRegexp.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// OrderService runs the order submission workflow: validate the form,
// create the order at the order service, clear the cart on success, and
// hand the caller the new order as a tracking reference.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	if err := validate.RegisterValidation("intlphone", func(fl validator.FieldLevel) bool {
		return isValidPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		validate:  validate,
	}
}

// Submit validates the form and places the order built from the cart's
// snapshot at submission time. An empty cart is rejected before validation
// with ErrEmptyCart and without touching the order service. Validation
// failures return ValidationErrors and leave all state alone. The cart is
// cleared only after the order service accepts the order; on a service
// failure it is preserved so the user can retry without re-entering data.
func (s *OrderService) Submit(ctx context.Context, cart *CartStore, form models.OrderForm, position *models.Position) (*models.Order, error) {
	snapshot := cart.Items()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	if errs := s.validateForm(form); len(errs) > 0 {
		return nil, errs
	}

	draft := models.DraftOrder{
		Customer: form.Customer,
		Phone:    form.Phone,
		Address:  form.Address,
		Position: position,
		Priority: form.Priority,
		Cart:     snapshot,
	}

	order, err := s.orderRepo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	cart.Clear()
	s.publish("order.created", order)
	return order, nil
}

// UpgradeToPriority flags a placed order for expedited handling. This is the
// only allowed in-place mutation of a placed order and retrying it is safe.
func (s *OrderService) UpgradeToPriority(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.UpdatePriority(ctx, id)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to upgrade order %s to priority: %w", id, err)
	}
	s.publish("order.priority_upgraded", order)
	return order, nil
}

func (s *OrderService) validateForm(form models.OrderForm) ValidationErrors {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	errs := ValidationErrors{}
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "Phone":
			errs["phone"] = "Please enter your correct phone number."
		case "Customer":
			errs["customer"] = "Please tell us your name."
		case "Address":
			errs["address"] = "Please provide a delivery address."
		}
	}
	return errs
}

// publish sends an order lifecycle event. Eventing is best effort; a broker
// failure never fails the order itself.
func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":  order.ID,
		"status":   order.Status,
		"priority": order.Priority,
		"total":    order.OrderPrice + order.PriorityPrice,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
