package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/reconcile"
	workdomain "github.com/energoledger/energoledger/internal/work/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createWorkBody struct {
	ClientID    string     `json:"client_id" binding:"required"`
	PropertyID  *string    `json:"property_id"`
	Description string     `json:"description" binding:"required"`
	Amount      *int64     `json:"amount"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ClearAmount drops the amount to null (deriving NO_AMOUNT); a present
// amount sets it. Absent leaves it untouched.
type updateWorkBody struct {
	ClientID    *string    `json:"client_id"`
	PropertyID  *string    `json:"property_id"`
	Description *string    `json:"description"`
	Amount      *int64     `json:"amount"`
	ClearAmount bool       `json:"clear_amount"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (s *Server) createWork(c *gin.Context) {
	var body createWorkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	work, err := s.works.Create(c.Request.Context(), workdomain.CreateWorkRequest{
		ClientID:    body.ClientID,
		PropertyID:  body.PropertyID,
		Description: body.Description,
		Amount:      body.Amount,
		StartedAt:   body.StartedAt,
		CompletedAt: body.CompletedAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, work)
}

func (s *Server) listWorks(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	propertyID, ok := queryID(c, "property_id")
	if !ok {
		return
	}

	resp, err := s.works.List(c.Request.Context(), workdomain.ListWorkRequest{
		ClientID:   clientID,
		PropertyID: propertyID,
		Status:     reconcile.Status(c.Query("payment_status")),
		Page:       page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getWork(c *gin.Context) {
	work, err := s.works.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (s *Server) updateWork(c *gin.Context) {
	var body updateWorkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	req := workdomain.UpdateWorkRequest{
		ClientID:    body.ClientID,
		PropertyID:  body.PropertyID,
		Description: body.Description,
		StartedAt:   body.StartedAt,
		CompletedAt: body.CompletedAt,
	}
	if body.ClearAmount {
		req.AmountSet = true
	} else if body.Amount != nil {
		req.Amount = body.Amount
		req.AmountSet = true
	}

	work, err := s.works.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

func (s *Server) deleteWork(c *gin.Context) {
	if err := s.works.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "work deleted"})
}
