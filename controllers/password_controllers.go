package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

type PasswordController struct {
	DB *gorm.DB
}

func NewPasswordController(db *gorm.DB) *PasswordController {
	return &PasswordController{DB: db}
}

const resetTokenTTL = time.Hour

// ForgotPassword issues a single-use reset token. The response never reveals
// whether the email exists; the token would normally go out by mail, here it
// is logged for the operator to relay.
func (pc *PasswordController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := pc.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same answer as the success path.
		utils.RespondJSON(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
		return
	}

	reset := models.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := pc.DB.Create(&reset).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Password reset token issued for %s: %s", user.Email, reset.Token)
	utils.RespondJSON(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword consumes a token and sets the new password.
func (pc *PasswordController) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reset models.PasswordReset
	if err := pc.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or expired reset token"))
		return
	}
	if !reset.Usable(time.Now()) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or expired reset token"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", now).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Password reset completed for user %d", reset.UserID)
	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}
