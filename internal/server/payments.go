package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/energoledger/energoledger/internal/payment/domain"
	"github.com/energoledger/energoledger/pkg/db/pagination"
)

type createPaymentBody struct {
	Amount   int64                     `json:"amount" binding:"required"`
	IsRefund bool                      `json:"is_refund"`
	Status   string                    `json:"status"`
	Method   string                    `json:"method"`
	Comment  string                    `json:"comment"`
	PaidAt   *time.Time                `json:"paid_at"`
	Targets  []paymentdomain.TargetRef `json:"targets"`
}

type updatePaymentBody struct {
	Amount   *int64     `json:"amount"`
	IsRefund *bool      `json:"is_refund"`
	Status   *string    `json:"status"`
	Method   *string    `json:"method"`
	Comment  *string    `json:"comment"`
	PaidAt   *time.Time `json:"paid_at"`
}

type paymentLinksBody struct {
	Targets []paymentdomain.TargetRef `json:"targets" binding:"required"`
}

func (s *Server) createPayment(c *gin.Context) {
	var body createPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	payment, err := s.payments.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		Amount:   body.Amount,
		IsRefund: body.IsRefund,
		Status:   body.Status,
		Method:   body.Method,
		Comment:  body.Comment,
		PaidAt:   body.PaidAt,
		Targets:  body.Targets,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (s *Server) listPayments(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	req := paymentdomain.ListPaymentRequest{
		Status: c.Query("status"),
		Page:   page,
	}
	if raw := c.Query("is_refund"); raw != "" {
		isRefund, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, errInvalidQuery)
			return
		}
		req.IsRefund = &isRefund
	}

	resp, err := s.payments.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getPayment(c *gin.Context) {
	payment, err := s.payments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (s *Server) updatePayment(c *gin.Context) {
	var body updatePaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	payment, err := s.payments.Update(c.Request.Context(), c.Param("id"), paymentdomain.UpdatePaymentRequest{
		Amount:   body.Amount,
		IsRefund: body.IsRefund,
		Status:   body.Status,
		Method:   body.Method,
		Comment:  body.Comment,
		PaidAt:   body.PaidAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (s *Server) deletePayment(c *gin.Context) {
	if err := s.payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

func (s *Server) linkPayment(c *gin.Context) {
	var body paymentLinksBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	payment, err := s.payments.Link(c.Request.Context(), c.Param("id"), body.Targets)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (s *Server) unlinkPayment(c *gin.Context) {
	var body paymentLinksBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, errInvalidBody)
		return
	}

	payment, err := s.payments.Unlink(c.Request.Context(), c.Param("id"), body.Targets)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
