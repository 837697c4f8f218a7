package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/servicetype"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createServiceTypeBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateServiceTypeBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) createServiceType(c *gin.Context) {
	var body createServiceTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	created, err := s.serviceTypes.Create(c.Request.Context(), servicetype.CreateServiceTypeRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listServiceTypes(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.serviceTypes.List(c.Request.Context(), servicetype.ListServiceTypeRequest{
		Name: c.Query("name"),
		Page: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getServiceType(c *gin.Context) {
	found, err := s.serviceTypes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) updateServiceType(c *gin.Context) {
	var body updateServiceTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	updated, err := s.serviceTypes.Update(c.Request.Context(), c.Param("id"), servicetype.UpdateServiceTypeRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteServiceType(c *gin.Context) {
	if err := s.serviceTypes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service type deleted"})
}
