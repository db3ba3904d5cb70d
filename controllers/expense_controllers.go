package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/services"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type ExpenseController struct {
	DB       *gorm.DB
	Ledger   *services.LedgerService
	Importer *services.ImportService
}

func NewExpenseController(db *gorm.DB, ledger *services.LedgerService, importer *services.ImportService) *ExpenseController {
	return &ExpenseController{DB: db, Ledger: ledger, Importer: importer}
}

type expenseRequest struct {
	Date          string                      `json:"date"`
	YieldEstimate int                         `json:"yield_estimate"`
	Description   string                      `json:"description"`
	Items         []services.ExpenseItemInput `json:"items"`
}

func (r *expenseRequest) toInput() services.ExpenseInput {
	var date time.Time
	if r.Date != "" {
		if parsed, err := time.Parse("2006-01-02", r.Date); err == nil {
			date = parsed
		}
	}

	return services.ExpenseInput{
		Date:          date,
		YieldEstimate: r.YieldEstimate,
		Description:   r.Description,
		Items:         r.Items,
	}
}

// GetAllExpenses -> list nota belanja beserta item, tanggal terbaru duluan
func (ec *ExpenseController) GetAllExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := ec.DB.Preload("Items").Order("date DESC").Find(&expenses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of expenses", expenses)
}

// CreateExpense -> catat nota belanja manual
func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var body expenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	expense, err := ec.Ledger.CreateExpense(body.toInput())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Belanja berhasil dicatat!", expense)
}

// UpdateExpense -> ganti header + seluruh item nota
func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("expense_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid expense id"))
		return
	}

	var body expenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ec.Ledger.UpdateExpense(uint(id), body.toInput()); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expense updated", gin.H{"expense_id": id})
}

// DeleteExpense -> hapus nota beserta item
func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("expense_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid expense id"))
		return
	}

	if err := ec.Ledger.DeleteExpense(uint(id)); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Nota belanja berhasil dihapus", gin.H{"expense_id": id})
}

// DeleteExpenseItem -> hapus satu item, totalCost parent ikut dikoreksi
func (ec *ExpenseController) DeleteExpenseItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if err := ec.Ledger.DeleteExpenseItem(uint(itemID)); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item berhasil dihapus & Total harga diperbarui", gin.H{"item_id": itemID})
}

// ImportExpenses -> upload Excel, baris dikelompokkan per nota
func (ec *ExpenseController) ImportExpenses(c *gin.Context) {
	rows, err := sheetRowsFromUpload(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	count, err := ec.Importer.ImportExpenses(rows)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Sukses import %d nota", count), gin.H{"count": count})
}

// ResetExpenses -> hapus SEMUA nota + history EXPENSE (dev only, destruktif)
func (ec *ExpenseController) ResetExpenses(c *gin.Context) {
	if err := ec.Ledger.ResetExpenses(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Semua Data Belanja & History BERSIH!", nil)
}
