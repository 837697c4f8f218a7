package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createPermissionBody struct {
	Action      string `json:"action" binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Description string `json:"description"`
}

type updatePermissionBody struct {
	Action      *string `json:"action"`
	Resource    *string `json:"resource"`
	Description *string `json:"description"`
}

func (s *Server) createPermission(c *gin.Context) {
	var body createPermissionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	permission, err := s.permissions.Create(c.Request.Context(), permissiondomain.CreatePermissionRequest{
		Action:      body.Action,
		Resource:    body.Resource,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, permission)
}

func (s *Server) listPermissions(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.permissions.List(c.Request.Context(), permissiondomain.ListPermissionRequest{
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
		Page:     page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getPermission(c *gin.Context) {
	permission, err := s.permissions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, permission)
}

func (s *Server) updatePermission(c *gin.Context) {
	var body updatePermissionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	permission, err := s.permissions.Update(c.Request.Context(), c.Param("id"), permissiondomain.UpdatePermissionRequest{
		Action:      body.Action,
		Resource:    body.Resource,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, permission)
}

func (s *Server) deletePermission(c *gin.Context) {
	if err := s.permissions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission deleted"})
}
