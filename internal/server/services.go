package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/energoledger/energoledger/internal/reconcile"
	servicedomain "github.com/energoledger/energoledger/internal/service/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createServiceBody struct {
	ClientID      string     `json:"client_id" binding:"required"`
	ServiceTypeID string     `json:"service_type_id" binding:"required"`
	Description   string     `json:"description"`
	Amount        *int64     `json:"amount"`
	PerformedAt   *time.Time `json:"performed_at"`
}

type updateServiceBody struct {
	ClientID      *string    `json:"client_id"`
	ServiceTypeID *string    `json:"service_type_id"`
	Description   *string    `json:"description"`
	Amount        *int64     `json:"amount"`
	ClearAmount   bool       `json:"clear_amount"`
	PerformedAt   *time.Time `json:"performed_at"`
}

func (s *Server) createService(c *gin.Context) {
	var body createServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	svc, err := s.services.Create(c.Request.Context(), servicedomain.CreateServiceRequest{
		ClientID:      body.ClientID,
		ServiceTypeID: body.ServiceTypeID,
		Description:   body.Description,
		Amount:        body.Amount,
		PerformedAt:   body.PerformedAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) listServices(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	serviceTypeID, ok := queryID(c, "service_type_id")
	if !ok {
		return
	}

	resp, err := s.services.List(c.Request.Context(), servicedomain.ListServiceRequest{
		ClientID:      clientID,
		ServiceTypeID: serviceTypeID,
		Status:        reconcile.Status(c.Query("payment_status")),
		Page:          page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getService(c *gin.Context) {
	svc, err := s.services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (s *Server) updateService(c *gin.Context) {
	var body updateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	req := servicedomain.UpdateServiceRequest{
		ClientID:      body.ClientID,
		ServiceTypeID: body.ServiceTypeID,
		Description:   body.Description,
		PerformedAt:   body.PerformedAt,
	}
	if body.ClearAmount {
		req.AmountSet = true
	} else if body.Amount != nil {
		req.Amount = body.Amount
		req.AmountSet = true
	}

	svc, err := s.services.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (s *Server) deleteService(c *gin.Context) {
	if err := s.services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
