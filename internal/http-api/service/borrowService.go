package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libraryhub/internal/http-api/apperr"
	"libraryhub/internal/http-api/models"
	"libraryhub/internal/http-api/repository"
)

// BorrowRepository is what the borrow service needs from the storage layer.
type BorrowRepository interface {
	Borrow(ctx context.Context, bookID int64, quantity int, dueDate time.Time) (*models.Borrow, error)
	Summary(ctx context.Context) ([]models.BorrowSummaryRow, error)
}

// SummaryCache caches the aggregation report between borrows.
type SummaryCache interface {
	Get(ctx context.Context) ([]models.BorrowSummaryRow, bool, error)
	Set(ctx context.Context, rows []models.BorrowSummaryRow) error
	Invalidate(ctx context.Context) error
}

type BorrowService interface {
	Borrow(ctx context.Context, bookID int64, quantity int, dueDate time.Time) (*models.Borrow, error)
	Summary(ctx context.Context) ([]models.BorrowSummaryRow, error)
}

type borrowService struct {
	repo   BorrowRepository
	cache  SummaryCache
	logger *slog.Logger
}

func NewBorrowService(repo BorrowRepository, cache SummaryCache, logger *slog.Logger) BorrowService {
	return &borrowService{repo: repo, cache: cache, logger: logger}
}

func (s *borrowService) Borrow(ctx context.Context, bookID int64, quantity int, dueDate time.Time) (*models.Borrow, error) {
	// zero or negative quantity would pass the copies guard and inflate
	// stock; reject it up front
	if quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	if dueDate.IsZero() {
		return nil, apperr.Validation("dueDate is required")
	}

	rec, err := s.repo.Borrow(ctx, bookID, quantity, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotFound):
			return nil, apperr.NotFound("book not found")
		case errors.Is(err, repository.ErrInsufficientCopies):
			return nil, apperr.InsufficientCopies("not enough copies available")
		default:
			return nil, apperr.Store("could not borrow book", err)
		}
	}

	// drop the cached report; best-effort, never blocks the response
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("summary cache invalidation failed", "error", err)
		}
	}()

	return rec, nil
}

func (s *borrowService) Summary(ctx context.Context) ([]models.BorrowSummaryRow, error) {
	if rows, ok, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn("summary cache read failed", "error", err)
	} else if ok {
		return rows, nil
	}

	rows, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, apperr.Store("could not build borrow summary", err)
	}

	if err := s.cache.Set(ctx, rows); err != nil {
		s.logger.Warn("summary cache write failed", "error", err)
	}
	return rows, nil
}
