package models

import "time"

// Borrow is an immutable log entry of one borrowing transaction.
// It holds a weak reference to the book; it never owns its lifecycle.
type Borrow struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID    int64     `json:"book" gorm:"not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity >= 1"`
	DueDate   time.Time `json:"dueDate" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Association
	Book *Book `json:"-" gorm:"foreignKey:BookID"`
}

func (Borrow) TableName() string {
	return "borrows"
}

// BorrowSummaryRow is one row of the borrowed-books report: total quantity
// borrowed per book, joined with the book's title and isbn. Scan target for
// the aggregation query; the dto package shapes the response.
type BorrowSummaryRow struct {
	Title         string
	ISBN          string
	TotalQuantity int64
}
