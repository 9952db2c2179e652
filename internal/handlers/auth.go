package handlers

import (
	"net/http"

	"schoolhub/internal/db"
	"schoolhub/internal/models"
	"schoolhub/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		accounts: services.NewAccountService(db.DB, tokens, services.NewMailService()),
	}
}

// Register starts a registration: creates an unverified account and mails
// a verification link.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name  string      `json:"name" binding:"required"`
		Email string      `json:"email" binding:"required,email"`
		Role  models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name and a valid email are required")
		return
	}

	if err := h.accounts.Register(req.Name, req.Email, req.Role); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "A verification link has been sent to your email."})
}

// VerifyEmail redeems the mailed token and sets the initial password.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		EmailToken string `json:"emailToken" binding:"required"`
		Password   string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "emailToken and a password of at least 6 characters are required")
		return
	}

	if err := h.accounts.VerifyEmail(req.EmailToken, req.Password); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration has been completed."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "email and password are required")
		return
	}

	pair, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Login was successful.",
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// FindPassword mails a reset link to the matching account.
func (h *AuthHandler) FindPassword(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "name and email are required")
		return
	}

	if err := h.accounts.FindPassword(req.Name, req.Email); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "A password reset link has been emailed to you."})
}

// ResetPassword redeems a reset token and replaces the password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		ResetPasswordToken string `json:"resetPasswordToken" binding:"required"`
		NewPassword        string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "resetPasswordToken and a newPassword of at least 6 characters are required")
		return
	}

	if err := h.accounts.ResetPassword(req.ResetPasswordToken, req.NewPassword); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your password has been reset successfully."})
}
