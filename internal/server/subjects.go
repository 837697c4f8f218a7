package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/subject"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createSubjectBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateSubjectBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) createSubject(c *gin.Context) {
	var body createSubjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	created, err := s.subjects.Create(c.Request.Context(), subject.CreateSubjectRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listSubjects(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	resp, err := s.subjects.List(c.Request.Context(), subject.ListSubjectRequest{
		Name: c.Query("name"),
		Page: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSubject(c *gin.Context) {
	found, err := s.subjects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) updateSubject(c *gin.Context) {
	var body updateSubjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	updated, err := s.subjects.Update(c.Request.Context(), c.Param("id"), subject.UpdateSubjectRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteSubject(c *gin.Context) {
	if err := s.subjects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subject deleted"})
}
