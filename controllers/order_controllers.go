package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/services"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Ledger   *services.LedgerService
	Importer *services.ImportService
}

func NewOrderController(db *gorm.DB, ledger *services.LedgerService, importer *services.ImportService) *OrderController {
	return &OrderController{DB: db, Ledger: ledger, Importer: importer}
}

type orderRequest struct {
	CustomerName  string                    `json:"customer_name" binding:"required"`
	Date          string                    `json:"date"`
	PaymentMethod string                    `json:"payment_method"`
	IsPaid        bool                      `json:"is_paid"`
	IsReceived    bool                      `json:"is_received"`
	Description   string                    `json:"description"`
	Items         []services.OrderItemInput `json:"items"`
}

func (r *orderRequest) toInput(adminID *uint) services.OrderInput {
	var date time.Time
	if r.Date != "" {
		if parsed, err := time.Parse("2006-01-02", r.Date); err == nil {
			date = parsed
		}
	}

	method := r.PaymentMethod
	if method == "" {
		method = "Cash"
	}

	return services.OrderInput{
		CustomerName:  r.CustomerName,
		Date:          date,
		PaymentMethod: method,
		IsPaid:        r.IsPaid,
		IsReceived:    r.IsReceived,
		Description:   r.Description,
		AdminID:       adminID,
		Items:         r.Items,
	}
}

// GetAllOrders -> list orders beserta items, terbaru duluan
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").Preload("Admin").Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> catat order manual
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body orderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	adminID := adminIDFromContext(c)
	order, err := oc.Ledger.CreateOrder(body.toInput(adminID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder -> ganti header + seluruh item order
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body orderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	adminID := adminIDFromContext(c)
	if err := oc.Ledger.UpdateOrder(uint(id), body.toInput(adminID)); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", gin.H{"order_id": id})
}

// DeleteOrder -> hapus order beserta item
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	if err := oc.Ledger.DeleteOrder(uint(id)); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

// ImportOrders -> upload Excel, satu order per baris valid
func (oc *OrderController) ImportOrders(c *gin.Context) {
	rows, err := sheetRowsFromUpload(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	adminID := adminIDFromContext(c)
	var id uint
	if adminID != nil {
		id = *adminID
	}

	count, err := oc.Importer.ImportOrders(rows, id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Berhasil import %d data", count), gin.H{"count": count})
}

// ResetOrders -> hapus SEMUA order + history ORDER (dev only, destruktif)
func (oc *OrderController) ResetOrders(c *gin.Context) {
	if err := oc.Ledger.ResetOrders(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Semua Data Order & History BERSIH!", nil)
}

// adminIDFromContext mengambil id admin yang diset auth middleware.
func adminIDFromContext(c *gin.Context) *uint {
	if v, exists := c.Get("admin_id"); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// sheetRowsFromUpload membaca field multipart "file" menjadi baris sheet.
func sheetRowsFromUpload(c *gin.Context) ([]services.SheetRow, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file tidak ditemukan")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return services.ParseSheet(buf)
}

func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrEmptyItems):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
