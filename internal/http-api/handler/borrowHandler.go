package handler

import (
	"context"
	"net/http"
	"time"

	"libraryhub/internal/http-api/apperr"
	"libraryhub/internal/http-api/dto"
	"libraryhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BorrowHandler struct {
	svc service.BorrowService
}

func NewBorrowHandler(svc service.BorrowService) *BorrowHandler {
	return &BorrowHandler{svc: svc}
}

func (h *BorrowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Borrow)
	rg.GET("", h.Summary)
}

func (h *BorrowHandler) Borrow(c *gin.Context) {
	var in dto.CreateBorrowDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation(err.Error())))
		return
	}
	dueDate, err := in.ParseDueDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.svc.Borrow(ctx, in.Book, in.Quantity, dueDate)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}
	c.JSON(http.StatusCreated, dto.Success("Book borrowed successfully", rec))
}

func (h *BorrowHandler) Summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.svc.Summary(ctx)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}

	resp := make([]dto.BorrowSummaryResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, dto.FromSummaryRow(row))
	}
	c.JSON(http.StatusOK, dto.Success("Borrowed books summary retrieved successfully", resp))
}
