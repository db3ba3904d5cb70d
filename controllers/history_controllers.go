package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// GetAllHistory -> 50 entry terakhir untuk panel notifikasi
func (hc *HistoryController) GetAllHistory(c *gin.Context) {
	logs := make([]models.HistoryLog, 0)
	if err := hc.DB.Order("created_at DESC").Limit(50).Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "History logs", logs)
}

// DeleteHistory -> hapus satu entry
func (hc *HistoryController) DeleteHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("log_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid log id"))
		return
	}

	if err := hc.DB.Delete(&models.HistoryLog{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "History log deleted", gin.H{"log_id": id})
}
