package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createRoleBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateRoleBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type setRolePermissionsBody struct {
	PermissionIDs []string `json:"permission_ids"`
}

func (s *Server) createRole(c *gin.Context) {
	var body createRoleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	role, err := s.roles.Create(c.Request.Context(), roledomain.CreateRoleRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (s *Server) listRoles(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.roles.List(c.Request.Context(), roledomain.ListRoleRequest{
		Name: c.Query("name"),
		Page: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getRole(c *gin.Context) {
	role, err := s.roles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (s *Server) updateRole(c *gin.Context) {
	var body updateRoleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	role, err := s.roles.Update(c.Request.Context(), c.Param("id"), roledomain.UpdateRoleRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (s *Server) deleteRole(c *gin.Context) {
	if err := s.roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role deleted"})
}

func (s *Server) setRolePermissions(c *gin.Context) {
	var body setRolePermissionsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	role, err := s.roles.SetPermissions(c.Request.Context(), c.Param("id"), body.PermissionIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}
