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

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> katalog varian + total terjual per varian
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	variantStats := make([]variantStat, 0)
	if err := pc.DB.Model(&models.OrderItem{}).
		Select("product_name, SUM(quantity) AS total_qty").
		Group("product_name").
		Scan(&variantStats).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", gin.H{
		"products":      products,
		"variant_stats": variantStats,
	})
}

// UpdateProduct -> edit harga varian. Tidak menyentuh subtotal
// OrderItem yang sudah tercatat.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var body struct {
		Price int `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := pc.DB.Model(&models.Product{}).Where("id = ?", id).Update("price", body.Price)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("produk tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", gin.H{"product_id": id})
}
