// order_test.go - Tests for order placement, lookup and batch fulfilment

package api

import (
	"encoding/json"     // For decoding JSON
	"net/http"          // HTTP status codes
	"net/http/httptest" // HTTP test helpers
	"path/filepath"     // For per-test database files
	"testing"           // Go's testing package
	"time"              // For token expiry offsets

	"restaurant_system/internal/db"         // Store open/migrate helpers
	"restaurant_system/internal/domain"     // Domain models
	"restaurant_system/internal/middleware" // JWT and role middleware

	"github.com/gin-gonic/gin"           // Gin web framework
	"github.com/stretchr/testify/assert" // For assertions
	"gorm.io/gorm"                       // GORM ORM library
)

// setupOrderDB creates a fresh file-backed order store for a test
func setupOrderDB(t *testing.T) *gorm.DB {
	g, err := db.Open(filepath.Join(t.TempDir(), "order.db")) // New store per test
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	if err := db.MigrateOrder(g); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}
	return g
}

// setupOrderRouter returns a Gin engine with the order service routes.
// The cache client is nil; the cache helpers treat that as a miss.
func setupOrderRouter(g *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()                            // New Gin router
	r.POST("/orders", CreateOrderHandler(g, nil)) // Order placement endpoint
	r.GET("/orders/:id", GetOrderHandler(g))      // Order lookup endpoint
	r.POST("/process_orders",
		middleware.JWTAuthMiddleware(testSecret), // Verify bearer tokens
		middleware.ManagerOnlyMiddleware(),       // Gate on the role claim
		ProcessOrdersHandler(g))                  // Batch fulfilment endpoint
	r.POST("/dishes", CreateDishHandler(g, nil))       // Create dish endpoint
	r.GET("/dishes/:id", GetDishHandler(g))            // Get dish endpoint
	r.PUT("/dishes/:id", UpdateDishHandler(g, nil))    // Update dish endpoint
	r.DELETE("/dishes/:id", DeleteDishHandler(g, nil)) // Delete dish endpoint
	r.GET("/menu", MenuHandler(g, nil))                // In-stock menu endpoint
	return r
}

// placeOrder POSTs an order for a single dish and records the response
func placeOrder(r *gin.Engine, dishID uint, quantity int, price float64) *httptest.ResponseRecorder {
	return postJSON(r, "/orders", CreateOrderRequest{
		UserID: 1,
		Dishes: []OrderDishRequest{
			{DishID: dishID, Quantity: quantity, Price: price},
		},
		SpecialRequests: "no onions",
	})
}

// TestPlaceOrderInsufficientStock verifies an oversold order is rejected and
// leaves the stock untouched
func TestPlaceOrderInsufficientStock(t *testing.T) {
	g := setupOrderDB(t)
	router := setupOrderRouter(g)

	dish := domain.Dish{Name: "Borscht", Price: 7.50, Quantity: 5}
	assert.NoError(t, g.Create(&dish).Error)

	// Requesting more than the remaining stock fails
	w := placeOrder(router, dish.ID, 6, 7.50)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stock is unchanged and nothing was persisted
	var reloaded domain.Dish
	assert.NoError(t, g.First(&reloaded, dish.ID).Error)
	assert.Equal(t, 5, reloaded.Quantity)

	var orderCount, itemCount int64
	g.Model(&domain.Order{}).Count(&orderCount)
	g.Model(&domain.OrderDish{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

// TestPlaceOrderExactStock verifies an order for the full remaining stock
// succeeds, drains the stock to zero and snapshots the price
func TestPlaceOrderExactStock(t *testing.T) {
	g := setupOrderDB(t)
	router := setupOrderRouter(g)

	dish := domain.Dish{Name: "Pelmeni", Price: 9.99, Quantity: 5}
	assert.NoError(t, g.Create(&dish).Error)

	w := placeOrder(router, dish.ID, 5, 9.99)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Stock drained to zero
	var reloaded domain.Dish
	assert.NoError(t, g.First(&reloaded, dish.ID).Error)
	assert.Equal(t, 0, reloaded.Quantity)

	// Exactly one snapshot line item with the submitted price
	var items []domain.OrderDish
	assert.NoError(t, g.Find(&items).Error)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 9.99, items[0].Price)

	// The order starts pending
	var order domain.Order
	assert.NoError(t, g.First(&order, items[0].OrderID).Error)
	assert.Equal(t, domain.StatusPending, order.Status)
}

// TestPlaceOrderUnknownDishRollsBack verifies a multi-line order with one
// bad line leaves no partial state behind
func TestPlaceOrderUnknownDishRollsBack(t *testing.T) {
	g := setupOrderDB(t)
	router := setupOrderRouter(g)

	dish := domain.Dish{Name: "Olivier", Price: 4.25, Quantity: 10}
	assert.NoError(t, g.Create(&dish).Error)

	// Second line references a dish that does not exist
	w := postJSON(router, "/orders", CreateOrderRequest{
		UserID: 1,
		Dishes: []OrderDishRequest{
			{DishID: dish.ID, Quantity: 2, Price: 4.25},
			{DishID: 9999, Quantity: 1, Price: 1.00},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The valid line's decrement was rolled back too
	var reloaded domain.Dish
	assert.NoError(t, g.First(&reloaded, dish.ID).Error)
	assert.Equal(t, 10, reloaded.Quantity)

	var orderCount int64
	g.Model(&domain.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

// TestGetOrder verifies order lookup returns line items and 404s on a
// missing order
func TestGetOrder(t *testing.T) {
	g := setupOrderDB(t)
	router := setupOrderRouter(g)

	order := domain.Order{UserID: 7, Status: domain.StatusPending, SpecialRequests: "extra sauce"}
	assert.NoError(t, g.Create(&order).Error)
	item := domain.OrderDish{OrderID: order.ID, DishID: 3, Quantity: 2, Price: 5.00}
	assert.NoError(t, g.Create(&item).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Order domain.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusPending, resp.Order.Status)
	assert.Len(t, resp.Order.Items, 1)

	// Missing order
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/orders/9999", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// processOrders POSTs /process_orders with the given bearer token
func processOrders(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/process_orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// TestProcessOrdersRequiresManager verifies the role gate and the pending to
// fulfilled batch transition
func TestProcessOrdersRequiresManager(t *testing.T) {
	g := setupOrderDB(t)
	router := setupOrderRouter(g)

	order := domain.Order{UserID: 2, Status: domain.StatusPending}
	assert.NoError(t, g.Create(&order).Error)

	// No token at all
	w := processOrders(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A user-role token is rejected and the order stays pending
	w = processOrders(router, signedToken(t, "user@example.com", domain.RoleUser, time.Minute))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var unchanged domain.Order
	assert.NoError(t, g.First(&unchanged, order.ID).Error)
	assert.Equal(t, domain.StatusPending, unchanged.Status)

	// A manager token fulfils every pending order
	w = processOrders(router, signedToken(t, "boss@example.com", domain.RoleManager, time.Minute))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Processed int64 `json:"processed"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Processed)

	var fulfilled domain.Order
	assert.NoError(t, g.First(&fulfilled, order.ID).Error)
	assert.Equal(t, domain.StatusFulfilled, fulfilled.Status)

	// An expired manager token is rejected on this path too
	w = processOrders(router, signedToken(t, "boss@example.com", domain.RoleManager, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
