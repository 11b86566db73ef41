package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/middleware"
	"alkhaled/pkg/response"
)

type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthHandler issues tokens for the device PIN. Registered only when a PIN
// is configured.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// Login exchanges the device PIN for an access token
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      handler.LoginRequest  true  "Login payload"
// @Success      200      {object}  response.Response{data=handler.LoginResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	token, err := middleware.Login(req.PIN)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid PIN"))
		return
	}
	c.SetCookie("access_token", token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, LoginResponse{AccessToken: token}))
}
