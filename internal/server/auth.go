package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
)

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	result, err := s.auth.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie(AuthCookieName, result.Token, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
	c.JSON(http.StatusOK, result)
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) me(c *gin.Context) {
	user, err := s.auth.CurrentUser(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
