package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryhub/internal/http-api/models"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrInsufficientCopies = errors.New("not enough copies available")
)

type BorrowRepo struct {
	db *gorm.DB
}

func NewBorrowRepo(db *gorm.DB) *BorrowRepo {
	return &BorrowRepo{db: db}
}

// Borrow runs the whole borrow transaction: conditional decrement,
// availability recompute and borrow-record insert share one database
// transaction. The decrement's WHERE guard (copies >= quantity) makes two
// concurrent borrows against the same stale read impossible, and a failed
// insert rolls the decrement back.
func (r *BorrowRepo) Borrow(ctx context.Context, bookID int64, quantity int, dueDate time.Time) (*models.Borrow, error) {
	var rec *models.Borrow

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND copies >= ?", bookID, quantity).
			UpdateColumn("copies", gorm.Expr("copies - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("decrement copies: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// guard failed: missing book or not enough stock
			var b models.Book
			if err := tx.First(&b, bookID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookNotFound
				}
				return fmt.Errorf("fetch book: %w", err)
			}
			return ErrInsufficientCopies
		}

		if err := recomputeAvailability(tx, bookID); err != nil {
			return err
		}

		rec = &models.Borrow{BookID: bookID, Quantity: quantity, DueDate: dueDate}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("create borrow record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Summary aggregates total borrowed quantity per book, joined with the
// book's title and isbn. Row order is unspecified.
func (r *BorrowRepo) Summary(ctx context.Context) ([]models.BorrowSummaryRow, error) {
	var rows []models.BorrowSummaryRow

	if err := r.db.WithContext(ctx).Model(&models.Borrow{}).
		Select("books.title AS title, books.isbn AS isbn, SUM(borrows.quantity) AS total_quantity").
		Joins("JOIN books ON books.id = borrows.book_id").
		Group("books.id, books.title, books.isbn").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("borrow summary: %w", err)
	}
	return rows, nil
}
