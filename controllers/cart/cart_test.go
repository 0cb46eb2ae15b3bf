package cartControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OmNinave/E-commerce-sub001/auth"
	"github.com/OmNinave/E-commerce-sub001/checkout"
	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

const testJWTSecret = "test-jwt-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Category{}, &models.GiftCard{},
	))

	st := store.New(db)
	svc := checkout.NewService(st, config.Fees{
		TaxPercent:         18,
		MarketplacePercent: 2,
		Shipping:           config.DefaultShipping(),
	}, "secret")

	r := gin.New()
	r.POST("/api/cart/validate", middleware.RequireAuth(testJWTSecret), ValidateCart(svc))
	return r, st
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.IssueToken(testJWTSecret, auth.Identity{
		UserID: "u1", Email: "u1@example.com", Role: "customer",
	}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func postJSON(r *gin.Engine, token string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/validate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateCartEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, st.CreateProduct(context.Background(), &models.Product{ID: 1, Name: "P1", Price: 100, Stock: 5}))

	// Client-sent prices are not even part of the schema; extra fields are
	// ignored and the subtotal comes from the catalog.
	w := postJSON(r, bearerToken(t), map[string]interface{}{
		"items":          []map[string]interface{}{{"productId": 1, "quantity": 2, "price": 0.01}},
		"shippingMethod": "standard",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success  bool    `json:"success"`
		Subtotal float64 `json:"subtotal"`
		Fees     struct {
			GrandTotal float64 `json:"grand_total"`
		} `json:"fees"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 200.0, resp.Subtotal, 1e-9)
	assert.InDelta(t, 290.72, resp.Fees.GrandTotal, 1e-9)
}

func TestValidateCartEndpointInsufficientStock(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, st.CreateProduct(context.Background(), &models.Product{ID: 1, Name: "P1", Price: 100, Stock: 5}))

	w := postJSON(r, bearerToken(t), map[string]interface{}{
		"items":          []map[string]interface{}{{"productId": 1, "quantity": 10}},
		"shippingMethod": "standard",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Kind      string `json:"kind"`
		ProductID uint   `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "InsufficientStock", resp.Kind)
	assert.Equal(t, uint(1), resp.ProductID)
}

func TestValidateCartEndpointUnknownProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, bearerToken(t), map[string]interface{}{
		"items":          []map[string]interface{}{{"productId": 42, "quantity": 1}},
		"shippingMethod": "standard",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateCartEndpointRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "", map[string]interface{}{
		"items":          []map[string]interface{}{{"productId": 1, "quantity": 1}},
		"shippingMethod": "standard",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateCartEndpointZeroQuantityKind(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, st.CreateProduct(context.Background(), &models.Product{ID: 1, Name: "P1", Price: 100, Stock: 5}))

	// Quantity zero must come back with the machine-readable kind, not as
	// a binding failure.
	w := postJSON(r, bearerToken(t), map[string]interface{}{
		"items":          []map[string]interface{}{{"productId": 1, "quantity": 0}},
		"shippingMethod": "standard",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "InvalidQuantity", resp.Kind)
}
