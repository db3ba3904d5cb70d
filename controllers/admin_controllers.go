package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// Register admin baru
func (ac *AdminController) Register(c *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	admin := models.Admin{
		Username: req.Username,
		Password: string(hashed),
		Role:     "admin",
	}

	if err := ac.DB.Create(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin baru terdaftar: %s", admin.Username)

	utils.RespondJSON(c, http.StatusCreated, "Admin registered", gin.H{
		"admin_id": admin.ID,
	})
}

// Login -> return JWT
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var admin models.Admin
	if err := ac.DB.Where("username = ?", input.Username).First(&admin).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

// GetProfile -> data admin dari JWT
func (ac *AdminController) GetProfile(c *gin.Context) {
	adminIDInterface, exists := c.Get("admin_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("admin id not found in context"))
		return
	}

	adminID, ok := adminIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid admin id type"))
		return
	}

	var admin models.Admin
	if err := ac.DB.First(&admin, adminID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
	})
}
