package api

import (
	"errors"   // For error matching
	"fmt"      // Error message formatting
	"net/http" // HTTP status codes
	"time"     // Timestamps in logs

	"restaurant_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// OrderDishRequest is one requested line item
type OrderDishRequest struct {
	DishID   uint    `json:"dish_id" binding:"required"`        // Dish to order
	Quantity int     `json:"quantity" binding:"required,min=1"` // Units requested
	Price    float64 `json:"price"`                             // Price snapshot submitted by the client
}

// CreateOrderRequest represents an order placement
type CreateOrderRequest struct {
	UserID          uint               `json:"user_id" binding:"required"`      // Placing user
	Dishes          []OrderDishRequest `json:"dishes" binding:"required,min=1"` // Line items
	SpecialRequests string             `json:"special_requests"`                // Optional note
}

// CreateOrderHandler places an order. The order row, its line items and all
// stock decrements commit in one transaction, so a rejected line item leaves
// the store untouched.
func CreateOrderHandler(g *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		order := domain.Order{
			UserID:          req.UserID,           // Placing user
			Status:          domain.StatusPending, // New orders start pending
			SpecialRequests: req.SpecialRequests,  // Optional note
		}
		var clientMsg string // Set when the failure is the client's fault
		// Atomic placement: everything commits or nothing does
		err := g.Transaction(func(tx *gorm.DB) error {
			// Create the order row
			if err := tx.Create(&order).Error; err != nil {
				return err // Return error to rollback
			}
			// Process each requested line item
			for _, item := range req.Dishes {
				var dish domain.Dish // Look up the dish
				if err := tx.First(&dish, item.DishID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						clientMsg = fmt.Sprintf("Dish with ID %d does not exist", item.DishID)
					}
					return err // Return error to rollback
				}
				// Requested quantity must not exceed current stock
				if item.Quantity > dish.Quantity {
					clientMsg = fmt.Sprintf("Insufficient quantity for dish with ID %d", item.DishID)
					return errors.New(clientMsg) // Return error to rollback
				}
				// Snapshot the line item
				orderDish := domain.OrderDish{
					OrderID:  order.ID,      // Parent order
					DishID:   dish.ID,       // Ordered dish
					Quantity: item.Quantity, // Units ordered
					Price:    item.Price,    // Price snapshot at order time
				}
				if err := tx.Create(&orderDish).Error; err != nil {
					return err // Return error to rollback
				}
				// Decrement stock
				if err := tx.Model(&dish).Update("quantity", gorm.Expr("quantity - ?", item.Quantity)).Error; err != nil {
					return err // Return error to rollback
				}
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			if clientMsg != "" {
				// Missing dish or insufficient stock
				c.JSON(http.StatusBadRequest, gin.H{"error": clientMsg})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Placing user
				"error":   err.Error(), // Error message
			}).Error("Order placement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		invalidateMenuCache(rdb) // Stock changed
		// Log the placed order
		logrus.WithFields(logrus.Fields{
			"order_id":  order.ID,                        // New order ID
			"user_id":   req.UserID,                      // Placing user
			"items":     len(req.Dishes),                 // Line item count
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Order created")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order_id": order.ID})
	}
}

// GetOrderHandler returns an order with its line items
func GetOrderHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order domain.Order // Fetch order with line items preloaded
		if err := g.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
			// Return not found if the order doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order}) // Return the order
	}
}

// ProcessOrdersHandler transitions every pending order to fulfilled in one
// transaction. Gated on the manager role by middleware.
func ProcessOrdersHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var processed int64 // Number of orders transitioned
		// Batch transition: all pending rows or none
		err := g.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&domain.Order{}).
				Where("status = ?", domain.StatusPending).
				Update("status", domain.StatusFulfilled)
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			processed = res.RowsAffected // Count for the response
			return nil                   // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Order processing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process orders"})
			return
		}
		// Log the batch transition
		logrus.WithFields(logrus.Fields{
			"processed": processed,                       // Orders fulfilled
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Orders processed")
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Orders processed successfully", "processed": processed})
	}
}
