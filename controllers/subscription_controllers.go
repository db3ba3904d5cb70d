package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/septianhadinugroho/snack-iseng-service/services"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

type SubscriptionController struct {
	Push *services.PushService
}

func NewSubscriptionController(push *services.PushService) *SubscriptionController {
	return &SubscriptionController{Push: push}
}

// GetVapidPublicKey -> frontend butuh public key untuk registrasi push
func (sc *SubscriptionController) GetVapidPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"public_key": os.Getenv("VAPID_PUBLIC_KEY")})
}

// Subscribe -> browser lapor diri mau dikirimin notif
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	var body struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Push.Subscribe(body.Endpoint, body.Keys.P256dh, body.Keys.Auth); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Subscribed", nil)
}
