package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/energoledger/energoledger/internal/user/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createUserBody struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	RoleID           string `json:"role_id" binding:"required"`
	Active           *bool  `json:"active"`
	TwoFactorEnabled *bool  `json:"two_factor_enabled"`
}

type updateUserBody struct {
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	RoleID           *string `json:"role_id"`
	Active           *bool   `json:"active"`
	TwoFactorEnabled *bool   `json:"two_factor_enabled"`
}

func (s *Server) createUser(c *gin.Context) {
	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	user, err := s.users.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Email:            body.Email,
		Password:         body.Password,
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		RoleID:           body.RoleID,
		Active:           body.Active,
		TwoFactorEnabled: body.TwoFactorEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) listUsers(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.users.List(c.Request.Context(), userdomain.ListUserRequest{
		Email:  c.Query("email"),
		RoleID: c.Query("role_id"),
		Page:   page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	user, err := s.users.Update(c.Request.Context(), c.Param("id"), userdomain.UpdateUserRequest{
		Email:            body.Email,
		Password:         body.Password,
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		RoleID:           body.RoleID,
		Active:           body.Active,
		TwoFactorEnabled: body.TwoFactorEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
