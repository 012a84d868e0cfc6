package services_test

import (
	"context"
	"fmt"
	"testing"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
	"pizzeria/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func cartWithMediterranean(t *testing.T) *services.CartStore {
	t.Helper()
	cart := services.NewCartStore()
	assert.NoError(t, cart.AddItem(12, "Mediterranean", 16))
	assert.NoError(t, cart.IncreaseQuantity(12))
	return cart
}

func validForm() models.OrderForm {
	return models.OrderForm{
		Customer: "Lee",
		Phone:    "+1-234-567-8900",
		Address:  "123 Main St",
		Priority: false,
	}
}

func TestOrderService_SubmitEmptyCart(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	order, err := service.Submit(context.Background(), services.NewCartStore(), validForm(), nil)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	// The precondition is checked before validation and before any
	// network call.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_SubmitRejectsShortPhone(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	cart := cartWithMediterranean(t)

	form := validForm()
	form.Phone = "555"
	order, err := service.Submit(context.Background(), cart, form, nil)

	assert.Nil(t, order)
	var validationErrs services.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "Please enter your correct phone number.", validationErrs["phone"])

	// Validation failures touch nothing: no service call, cart intact.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 2, cart.Quantity(12))
}

func TestOrderService_SubmitRejectsMissingFields(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	cart := cartWithMediterranean(t)

	order, err := service.Submit(context.Background(), cart, models.OrderForm{Phone: "+1-234-567-8900"}, nil)

	assert.Nil(t, order)
	var validationErrs services.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "customer")
	assert.Contains(t, validationErrs, "address")
	assert.NotContains(t, validationErrs, "phone")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_SubmitSuccess(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, mockEvents)
	cart := cartWithMediterranean(t)

	created := &models.Order{ID: "IIDSAT", Status: "preparing", OrderPrice: 32}
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(draft models.DraftOrder) bool {
		return draft.Customer == "Lee" &&
			!draft.Priority &&
			len(draft.Cart) == 1 &&
			draft.Cart[0].PizzaID == 12 &&
			draft.Cart[0].Quantity == 2 &&
			draft.Cart[0].TotalPrice == 32
	})).Return(created, nil).Once()
	mockEvents.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := service.Submit(context.Background(), cart, validForm(), nil)

	assert.NoError(t, err)
	assert.Equal(t, "IIDSAT", order.ID)
	// The cart is cleared only after the order service accepted the order.
	assert.Empty(t, cart.Items())
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestOrderService_SubmitKeepsPositionSnapshot(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	cart := cartWithMediterranean(t)

	position := &models.Position{Latitude: 40.71, Longitude: -74.0}
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(draft models.DraftOrder) bool {
		return draft.Position != nil && draft.Position.Latitude == 40.71
	})).Return(&models.Order{ID: "abc"}, nil).Once()

	_, err := service.Submit(context.Background(), cart, validForm(), position)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_SubmitServiceFailurePreservesCart(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)
	cart := cartWithMediterranean(t)

	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("service unavailable")).Once()

	order, err := service.Submit(context.Background(), cart, validForm(), nil)

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "service unavailable")
	// No user data is lost; the user can retry.
	assert.Equal(t, 2, cart.Quantity(12))
	mockRepo.AssertExpectations(t)
}

func TestOrderService_SubmitBrokerFailureDoesNotFailOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, mockEvents)
	cart := cartWithMediterranean(t)

	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(&models.Order{ID: "abc"}, nil).Once()
	mockEvents.On("Publish", "order.created", mock.Anything).
		Return(fmt.Errorf("broker down")).Once()

	order, err := service.Submit(context.Background(), cart, validForm(), nil)

	assert.NoError(t, err)
	assert.Equal(t, "abc", order.ID)
	assert.Empty(t, cart.Items())
}

func TestOrderService_UpgradeToPriority(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, mockEvents)

	upgraded := &models.Order{ID: "abc", Priority: true, OrderPrice: 48, PriorityPrice: 9.6}
	mockRepo.On("UpdatePriority", mock.Anything, "abc").Return(upgraded, nil).Twice()
	mockEvents.On("Publish", "order.priority_upgraded", mock.Anything).Return(nil).Twice()

	// Retrying the upgrade is safe and lands in the same end state.
	first, err := service.UpgradeToPriority(context.Background(), "abc")
	assert.NoError(t, err)
	second, err := service.UpgradeToPriority(context.Background(), "abc")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, second.Priority)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpgradeUnknownOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	mockRepo.On("UpdatePriority", mock.Anything, "missing").
		Return(nil, repositories.ErrOrderNotFound).Once()

	order, err := service.UpgradeToPriority(context.Background(), "missing")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestPhoneValidation(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil)

	valid := []string{"+1-234-567-8900", "234567890", "+44 20 7946 0958", "(123) 456-7890"}
	invalid := []string{"555", "not-a-phone", "", "+1-2-3", "12345678901234567890"}

	for _, phone := range valid {
		cart := cartWithMediterranean(t)
		form := validForm()
		form.Phone = phone
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(&models.Order{ID: "x"}, nil).Once()
		_, err := service.Submit(context.Background(), cart, form, nil)
		assert.NoError(t, err, "phone %q should pass", phone)
	}

	for _, phone := range invalid {
		cart := cartWithMediterranean(t)
		form := validForm()
		form.Phone = phone
		_, err := service.Submit(context.Background(), cart, form, nil)
		var validationErrs services.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs, "phone %q should fail", phone)
		assert.Contains(t, validationErrs, "phone")
	}
}
