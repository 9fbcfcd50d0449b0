package dto

import (
	"fmt"
	"time"

	"libraryhub/internal/http-api/models"
)

// CreateBorrowDTO used for POST /api/borrow
type CreateBorrowDTO struct {
	Book     int64  `json:"book" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	DueDate  string `json:"dueDate" binding:"required"`
}

// ParseDueDate accepts RFC 3339 timestamps and plain dates.
func (d CreateBorrowDTO) ParseDueDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, d.DueDate); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", d.DueDate); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid dueDate: %s", d.DueDate)
}

// BorrowSummaryResponse is one entry of GET /api/borrow.
type BorrowSummaryResponse struct {
	Book          BorrowSummaryBook `json:"book"`
	TotalQuantity int64             `json:"totalQuantity"`
}

type BorrowSummaryBook struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

func FromSummaryRow(row models.BorrowSummaryRow) BorrowSummaryResponse {
	return BorrowSummaryResponse{
		Book:          BorrowSummaryBook{Title: row.Title, ISBN: row.ISBN},
		TotalQuantity: row.TotalQuantity,
	}
}
