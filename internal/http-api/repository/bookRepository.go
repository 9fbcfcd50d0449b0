package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres unique_violation, raised on a duplicate isbn.
const uniqueViolationCode = "23505"

var ErrDuplicateISBN = errors.New("isbn already exists")

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateISBN
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns books, optionally filtered by genre, ordered by sortBy/order
// and capped at limit.
func (r *BookRepo) List(ctx context.Context, genre models.Genre, sortBy, order string, limit int) ([]models.Book, error) {
	var list []models.Book

	db := r.db.WithContext(ctx)
	if genre != "" {
		db = db.Where("genre = ?", genre)
	}
	db = db.Order(fmt.Sprintf("%s %s", sortBy, order)).Limit(limit)

	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

// Update saves the book and re-derives available inside one transaction, so
// a copies change can never land without the flag following it.
func (r *BookRepo) Update(ctx context.Context, b *models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return ErrDuplicateISBN
			}
			return fmt.Errorf("update book: %w", err)
		}
		if err := recomputeAvailability(tx, b.ID); err != nil {
			return err
		}
		// keep the in-memory copy in sync with what the store derived
		b.Available = b.Copies > 0
		return nil
	})
}

// RecomputeAvailability sets available = (copies > 0) on the stored record.
// Returns found=false when no book has that id.
func (r *BookRepo) RecomputeAvailability(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("available", gorm.Expr("copies > 0"))
	if res.Error != nil {
		return false, fmt.Errorf("recompute availability: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// recomputeAvailability is the single derivation point for the available
// flag; every mutation path inside a transaction funnels through it.
func recomputeAvailability(tx *gorm.DB, id int64) error {
	if err := tx.Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("available", gorm.Expr("copies > 0")).Error; err != nil {
		return fmt.Errorf("recompute availability: %w", err)
	}
	return nil
}
