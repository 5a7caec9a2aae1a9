package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"restaurant_system/internal/domain" // Importing domain models
	"restaurant_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// menuCacheKey caches the list of in-stock dishes
const menuCacheKey = "menu:available"

// menuCacheTTL bounds staleness between invalidations
const menuCacheTTL = 60 * time.Second

// invalidateMenuCache drops the cached menu after any stock or catalog change
func invalidateMenuCache(rdb *redis.Client) {
	// Cache failures never fail the request
	_ = utils.DeleteCache(context.Background(), rdb, menuCacheKey)
}

// DishRequest carries the full dish payload for create and update.
// Numeric fields are deliberately not range-checked.
type DishRequest struct {
	Name        string  `json:"name" binding:"required"` // Dish name
	Description string  `json:"description"`             // Free-form description
	Price       float64 `json:"price"`                   // Catalog price
	Quantity    int     `json:"quantity"`                // Initial or replacement stock
}

// CreateDishHandler adds a dish to the catalog
func CreateDishHandler(g *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DishRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		dish := domain.Dish{
			Name:        req.Name,        // Dish name
			Description: req.Description, // Description
			Price:       req.Price,       // Catalog price
			Quantity:    req.Quantity,    // Initial stock
		}
		// Save the new dish
		if err := g.Create(&dish).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Dish name
				"error": err.Error(), // Error message
			}).Error("Failed to create dish")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
			return
		}
		invalidateMenuCache(rdb) // Stock list changed
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Dish created successfully", "dish": dish})
	}
}

// GetDishHandler returns a single dish by ID
func GetDishHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dish domain.Dish // Fetch dish by path parameter
		if err := g.First(&dish, c.Param("id")).Error; err != nil {
			// Return not found if the dish doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dish": dish}) // Return dish info
	}
}

// UpdateDishHandler replaces all dish fields.
// The read-modify-write has no row locking, matching the catalog's
// single-writer assumption.
func UpdateDishHandler(g *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dish domain.Dish // Fetch dish by path parameter
		if err := g.First(&dish, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		var req DishRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Replace every field with the submitted values
		updates := map[string]any{
			"name":        req.Name,        // Dish name
			"description": req.Description, // Description
			"price":       req.Price,       // Catalog price
			"quantity":    req.Quantity,    // Replacement stock
		}
		if err := g.Model(&dish).Updates(updates).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"dish_id": dish.ID,     // Dish ID
				"error":   err.Error(), // Error message
			}).Error("Failed to update dish")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
			return
		}
		invalidateMenuCache(rdb) // Stock list may have changed
		c.JSON(http.StatusOK, gin.H{"message": "Dish updated successfully", "dish": dish})
	}
}

// DeleteDishHandler removes a dish from the catalog
func DeleteDishHandler(g *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dish domain.Dish // Fetch dish by path parameter
		if err := g.First(&dish, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		// Delete the row
		if err := g.Delete(&dish).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"dish_id": dish.ID,     // Dish ID
				"error":   err.Error(), // Error message
			}).Error("Failed to delete dish")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish"})
			return
		}
		invalidateMenuCache(rdb) // Stock list changed
		c.JSON(http.StatusOK, gin.H{"message": "Dish deleted successfully"})
	}
}

// MenuHandler returns every dish with stock remaining
func MenuHandler(g *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Dish    // Try the cache first
		found, err := utils.GetCache(ctx, rdb, menuCacheKey, &cached)
		if err == nil && found {
			// Return cached menu
			c.JSON(http.StatusOK, gin.H{"count": len(cached), "menu": cached, "cached": true})
			return
		}
		var dishes []domain.Dish // Fetch in-stock dishes from the database
		if err := g.Where("quantity > 0").Find(&dishes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}
		// Cache the result for future requests
		_ = utils.SetCache(ctx, rdb, menuCacheKey, dishes, menuCacheTTL)
		c.JSON(http.StatusOK, gin.H{"count": len(dishes), "menu": dishes, "cached": false})
	}
}
