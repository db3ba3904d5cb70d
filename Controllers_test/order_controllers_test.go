package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/controllers"
	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/services"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Admin{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
		&models.ExpenseItem{},
		&models.HistoryLog{},
		&models.PushSubscription{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	ledger := services.NewLedgerService(db, nil)
	importer := services.NewImportService(ledger)
	orderCtrl := controllers.NewOrderController(db, ledger, importer)

	router.GET("/api/orders", orderCtrl.GetAllOrders)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	router.PUT("/api/orders/:order_id", orderCtrl.UpdateOrder)
	router.DELETE("/api/orders/:order_id", orderCtrl.DeleteOrder)
	router.DELETE("/api/orders/reset/all", orderCtrl.ResetOrders)
	return router
}

func TestCreateAndListOrders(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"customer_name":  "Ani",
		"payment_method": "Cash",
		"is_paid":        true,
		"items": []map[string]interface{}{
			{"product_name": "Balado", "quantity": 2},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "Order created", createResp["message"])

	data := createResp["data"].(map[string]interface{})
	assert.Equal(t, float64(10000), data["total_price"])
	assert.Equal(t, float64(2), data["total_items"])

	// List
	req, err = http.NewRequest("GET", "/api/orders", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	orders := listResp["data"].([]interface{})
	assert.Len(t, orders, 1)
}

func TestCreateOrderWithoutNameRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderNotFoundReturns404(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	body := `{"customer_name":"Ghost","items":[]}`
	req, _ := http.NewRequest("PUT", "/api/orders/999", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderNotFoundReturns404(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	req, _ := http.NewRequest("DELETE", "/api/orders/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetOrdersClearsLedger(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	ledger := services.NewLedgerService(db, nil)
	_, err := ledger.CreateOrder(services.OrderInput{
		CustomerName: "Budi",
		Items:        []services.OrderItemInput{{ProductName: "BBQ", Quantity: 4}},
	})
	assert.NoError(t, err)

	req, _ := http.NewRequest("DELETE", "/api/orders/reset/all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
