package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type variantStat struct {
	ProductName string `json:"product_name"`
	TotalQty    int    `json:"total_qty"`
}

// GetDashboard -> rollup read-only: kartu angka, chart per varian, history terakhir.
// Semua agregat default 0 kalau belum ada data.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	var totalOrders int64
	if err := dc.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var income int
	if err := dc.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").Scan(&income).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var expenseTotal int
	if err := dc.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(total_cost), 0)").Scan(&expenseTotal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	salesByVariant := make([]variantStat, 0)
	if err := dc.DB.Model(&models.OrderItem{}).
		Select("product_name, SUM(quantity) AS total_qty").
		Group("product_name").
		Scan(&salesByVariant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	history := make([]models.HistoryLog, 0)
	if err := dc.DB.Order("created_at DESC").Limit(10).Find(&history).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"cards": gin.H{
			"total_orders":  totalOrders,
			"income":        income,
			"expense_total": expenseTotal,
			"profit":        income - expenseTotal,
		},
		"chart":   salesByVariant,
		"history": history,
	})
}
