package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/adapters/http/handlers"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/service"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" example:"admin"`
	Role      string    `json:"role" example:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"bearer"`
	User        UserResponse `json:"user"`
}

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary     Log in
// @Description Exchanges username and password for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.LoginRequest true "Credentials"
// @Success     200     {object} LoginResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	session, err := ac.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		User: UserResponse{
			ID:        string(session.User.ID),
			Username:  session.User.Username,
			Role:      string(session.User.Role),
			CreatedAt: session.User.CreatedAt,
		},
	})
}
