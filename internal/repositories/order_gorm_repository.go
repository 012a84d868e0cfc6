package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pizzeria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRecord is the GORM persistence shape of an order. The cart snapshot
// and the resolved position are serialized to JSON columns; only the order
// service's own records are persisted, never the live cart.
type orderRecord struct {
	ID                string `gorm:"primaryKey;type:varchar(36)"`
	Status            string `gorm:"type:varchar(32)"`
	Priority          bool
	Customer          string `gorm:"type:varchar(100)"`
	Phone             string `gorm:"type:varchar(32)"`
	Address           string `gorm:"type:varchar(255)"`
	PositionJSON      string `gorm:"column:position_json;type:text"`
	OrderPrice        float64
	PriorityPrice     float64
	EstimatedDelivery time.Time
	CartJSON          string `gorm:"column:cart_json;type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (orderRecord) TableName() string { return "orders" }

// GORMOrderRepository is a GORM implementation of OrderRepository. It backs
// the embedded order service when the app runs against sqlite or postgres
// instead of the remote restaurant API.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository and
// migrates the orders table.
func NewGORMOrderRepository(db *gorm.DB) (*GORMOrderRepository, error) {
	if err := db.AutoMigrate(&orderRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return &GORMOrderRepository{db: db}, nil
}

// Create places a new order from the draft and prices it.
func (r *GORMOrderRepository) Create(ctx context.Context, draft models.DraftOrder) (*models.Order, error) {
	now := time.Now()
	price := orderPrice(draft.Cart)
	order := models.Order{
		ID:                uuid.New().String(),
		Status:            "preparing",
		Priority:          draft.Priority,
		Customer:          draft.Customer,
		Phone:             draft.Phone,
		Address:           draft.Address,
		Position:          draft.Position,
		OrderPrice:        price,
		PriorityPrice:     priorityPrice(price, draft.Priority),
		EstimatedDelivery: estimateDelivery(now, draft.Priority),
		Cart:              draft.Cart,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	rec, err := toRecord(order)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return fromRecord(rec)
}

// UpdatePriority flags an existing order as priority.
func (r *GORMOrderRepository) UpdatePriority(ctx context.Context, id string) (*models.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s for priority update: %w", id, err)
	}

	rec.Priority = true
	rec.PriorityPrice = priorityPrice(rec.OrderPrice, true)
	rec.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to update order %s priority: %w", id, err)
	}
	return fromRecord(rec)
}

func toRecord(order models.Order) (orderRecord, error) {
	cartJSON, err := json.Marshal(order.Cart)
	if err != nil {
		return orderRecord{}, fmt.Errorf("failed to marshal cart: %w", err)
	}
	positionJSON := ""
	if order.Position != nil {
		b, err := json.Marshal(order.Position)
		if err != nil {
			return orderRecord{}, fmt.Errorf("failed to marshal position: %w", err)
		}
		positionJSON = string(b)
	}
	return orderRecord{
		ID:                order.ID,
		Status:            order.Status,
		Priority:          order.Priority,
		Customer:          order.Customer,
		Phone:             order.Phone,
		Address:           order.Address,
		PositionJSON:      positionJSON,
		OrderPrice:        order.OrderPrice,
		PriorityPrice:     order.PriorityPrice,
		EstimatedDelivery: order.EstimatedDelivery,
		CartJSON:          string(cartJSON),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}, nil
}

func fromRecord(rec orderRecord) (*models.Order, error) {
	var cart []models.CartLine
	if rec.CartJSON != "" {
		if err := json.Unmarshal([]byte(rec.CartJSON), &cart); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart for order %s: %w", rec.ID, err)
		}
	}
	var position *models.Position
	if rec.PositionJSON != "" {
		position = &models.Position{}
		if err := json.Unmarshal([]byte(rec.PositionJSON), position); err != nil {
			return nil, fmt.Errorf("failed to unmarshal position for order %s: %w", rec.ID, err)
		}
	}
	return &models.Order{
		ID:                rec.ID,
		Status:            rec.Status,
		Priority:          rec.Priority,
		Customer:          rec.Customer,
		Phone:             rec.Phone,
		Address:           rec.Address,
		Position:          position,
		OrderPrice:        rec.OrderPrice,
		PriorityPrice:     rec.PriorityPrice,
		EstimatedDelivery: rec.EstimatedDelivery,
		Cart:              cart,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}, nil
}
