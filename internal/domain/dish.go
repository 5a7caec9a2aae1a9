package domain

// Dish Model (order store)
type Dish struct {
	ID          uint    `json:"id" gorm:"primaryKey"` // Primary key
	Name        string  `json:"name" gorm:"not null"` // Dish name
	Description string  `json:"description"`          // Free-form description
	Price       float64 `json:"price"`                // Current catalog price
	Quantity    int     `json:"quantity"`             // Remaining sellable stock
}
