package handlers

import (
	"net/http"
	"strings"

	"schoolhub/internal/db"
	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(tokens *services.TokenService) *UserHandler {
	return &UserHandler{
		accounts: services.NewAccountService(db.DB, tokens, services.NewMailService()),
	}
}

// UpdateRole moves another member to a different role. Teachers only.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req struct {
		UserID uint        `json:"userId" binding:"required"`
		Role   models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "userId and role are required")
		return
	}

	if err := h.accounts.ChangeRole(middleware.CurrentUserID(c), req.UserID, req.Role); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The role has been updated."})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(middleware.CurrentUserID(c)); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout was successful."})
}

// Refresh mints a new access token. The refresh token travels as the
// bearer credential on this route.
func (h *UserHandler) Refresh(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "RefreshToken is required."})
		return
	}

	access, err := h.accounts.ReissueAccessToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

func (h *UserHandler) MyPosts(c *gin.Context) {
	posts, err := h.accounts.MyPosts(middleware.CurrentUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *UserHandler) MyComments(c *gin.Context) {
	comments, err := h.accounts.MyComments(middleware.CurrentUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// GetUser exposes the public profile of an account.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	user, err := h.accounts.GetUser(id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// UpdateProfile changes the requester's own name and/or password.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	if utils.StringToUint(c.Param("id")) != middleware.CurrentUserID(c) {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	var req struct {
		Name             string `json:"name"`
		Password         string `json:"password"`
		NewPassword      string `json:"newPassword"`
		CheckNewPassword string `json:"checkNewPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	err := h.accounts.UpdateProfile(middleware.CurrentUserID(c),
		req.Name, req.Password, req.NewPassword, req.CheckNewPassword)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Your profile has been updated."})
}

// DeleteAccount removes the requester's own account after a password
// confirmation.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if utils.StringToUint(c.Param("id")) != middleware.CurrentUserID(c) {
		HandleServiceError(c, services.ErrForbidden)
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "password is required")
		return
	}

	if err := h.accounts.DeleteAccount(middleware.CurrentUserID(c), req.Password); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The account has been deleted."})
}
