package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

type AuthHandler struct {
	sessions service.SessionService
}

func NewAuthHandler(sessions service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange username/password for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body	handler.LoginReq	true	"Credentials"
//	@Success		200	{object}	serializer.Response{data=handler.LoginResp}
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	token, user, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid credentials", nil))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: LoginResp{Token: token, User: user}})
}
