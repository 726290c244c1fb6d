package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserService reports the authenticated account user.
type UserService interface {
	UserID(ctx context.Context) (int, error)
}

type AccountController struct {
	users UserService
}

func NewAccountController(users UserService) *AccountController {
	return &AccountController{users: users}
}

// GetAccount handles GET /api/account.
func (ac *AccountController) GetAccount(c *gin.Context) {
	id, err := ac.users.UserID(c.Request.Context())
	if err != nil {
		respondError(c, "account-controller", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": id})
}
