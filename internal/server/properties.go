package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/property"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createPropertyBody struct {
	ClientID    string   `json:"client_id" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Area        *float64 `json:"area"`
	Description string   `json:"description"`
}

type updatePropertyBody struct {
	ClientID    *string  `json:"client_id"`
	Address     *string  `json:"address"`
	Area        *float64 `json:"area"`
	Description *string  `json:"description"`
}

func (s *Server) createProperty(c *gin.Context) {
	var body createPropertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	created, err := s.properties.Create(c.Request.Context(), property.CreatePropertyRequest{
		ClientID:    body.ClientID,
		Address:     body.Address,
		Area:        body.Area,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listProperties(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}

	resp, err := s.properties.List(c.Request.Context(), property.ListPropertyRequest{
		ClientID: clientID,
		Address:  c.Query("address"),
		Page:     page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getProperty(c *gin.Context) {
	found, err := s.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) updateProperty(c *gin.Context) {
	var body updatePropertyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	updated, err := s.properties.Update(c.Request.Context(), c.Param("id"), property.UpdatePropertyRequest{
		ClientID:    body.ClientID,
		Address:     body.Address,
		Area:        body.Area,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteProperty(c *gin.Context) {
	if err := s.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
