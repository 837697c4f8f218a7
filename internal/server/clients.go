package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createClientBody struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
	Metadata map[string]any `json:"metadata"`
}

type updateClientBody struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Phone    *string        `json:"phone"`
	Address  *string        `json:"address"`
	Metadata map[string]any `json:"metadata"`
}

type setClientSubjectsBody struct {
	SubjectIDs []string `json:"subject_ids"`
}

func (s *Server) createClient(c *gin.Context) {
	var body createClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	client, err := s.clients.Create(c.Request.Context(), clientdomain.CreateClientRequest{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Address:  body.Address,
		Metadata: body.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (s *Server) listClients(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.clients.List(c.Request.Context(), clientdomain.ListClientRequest{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Page:  page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getClient(c *gin.Context) {
	client, err := s.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) updateClient(c *gin.Context) {
	var body updateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	client, err := s.clients.Update(c.Request.Context(), c.Param("id"), clientdomain.UpdateClientRequest{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		Address:  body.Address,
		Metadata: body.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) deleteClient(c *gin.Context) {
	if err := s.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

func (s *Server) setClientSubjects(c *gin.Context) {
	var body setClientSubjectsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	client, err := s.clients.SetSubjects(c.Request.Context(), c.Param("id"), body.SubjectIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
