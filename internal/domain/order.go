package domain

import "time"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

// Status moves pending -> fulfilled and is never reversed
const (
	StatusPending   OrderStatus = "pending"   // Placed, not yet processed
	StatusFulfilled OrderStatus = "fulfilled" // Processed by a manager
)

// Order Model (order store)
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`                      // Primary key
	UserID          uint        `json:"user_id" gorm:"index;not null"`             // Placing user (auth service ID)
	Status          OrderStatus `json:"status" gorm:"not null;default:pending"`    // Lifecycle state
	SpecialRequests string      `json:"special_requests"`                          // Optional note from the customer
	Items           []OrderDish `json:"items,omitempty" gorm:"foreignKey:OrderID"` // Line items
	CreatedAt       time.Time   `json:"created_at"`                                // Set on insert
	UpdatedAt       time.Time   `json:"updated_at"`                                // Bumped on status change
}

// OrderDish Model (order store)
// Immutable once created; price is snapshotted at order time.
type OrderDish struct {
	ID       uint    `json:"id" gorm:"primaryKey"`           // Primary key
	OrderID  uint    `json:"order_id" gorm:"index;not null"` // Foreign key to Order
	DishID   uint    `json:"dish_id" gorm:"not null"`        // Foreign key to Dish
	Quantity int     `json:"quantity" gorm:"not null"`       // Units ordered
	Price    float64 `json:"price" gorm:"not null"`          // Price snapshot at order time
}
