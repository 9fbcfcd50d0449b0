package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"libraryhub/internal/http-api/apperr"
	"libraryhub/internal/http-api/models"
	"libraryhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// BookRepository is what the book service needs from the storage layer.
type BookRepository interface {
	Create(ctx context.Context, b *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, genre models.Genre, sortBy, order string, limit int) ([]models.Book, error)
	Update(ctx context.Context, b *models.Book) error
	RecomputeAvailability(ctx context.Context, id int64) (bool, error)
}

// UpdateBookInput carries a partial update; nil fields are left untouched.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Genre       *models.Genre
	ISBN        *string
	Description *string
	Copies      *int
}

type ListBooksInput struct {
	Genre  string
	SortBy string
	Order  string
	Limit  int
}

type BookService interface {
	Create(ctx context.Context, b *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, in ListBooksInput) ([]models.Book, error)
	Update(ctx context.Context, id int64, in UpdateBookInput) (*models.Book, error)
	RecomputeAvailability(ctx context.Context, id int64) error
}

type bookService struct {
	repo   BookRepository
	logger *slog.Logger
}

func NewBookService(repo BookRepository, logger *slog.Logger) BookService {
	return &bookService{repo: repo, logger: logger}
}

// sortColumns maps client-facing sort keys to the columns they order by.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"author":    "author",
	"copies":    "copies",
	"genre":     "genre",
}

func (s *bookService) Create(ctx context.Context, b *models.Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.ISBN = strings.TrimSpace(b.ISBN)

	if b.Title == "" {
		return apperr.Validation("title is required")
	}
	if b.Author == "" {
		return apperr.Validation("author is required")
	}
	if b.ISBN == "" {
		return apperr.Validation("isbn is required")
	}
	if b.Copies < 0 {
		return apperr.Validation("copies must be a positive number")
	}
	if b.Genre == "" {
		b.Genre = models.GenreFiction
	}
	if !b.Genre.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid genre: %s", b.Genre))
	}

	// derived field: available always follows copies
	b.Available = b.Copies > 0

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateISBN) {
			return apperr.Validation("isbn already exists")
		}
		return apperr.Store("could not create book", err)
	}
	return nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("book not found")
		}
		return nil, apperr.Store("could not fetch book", err)
	}
	return b, nil
}

func (s *bookService) List(ctx context.Context, in ListBooksInput) ([]models.Book, error) {
	genre := models.Genre(strings.ToUpper(strings.TrimSpace(in.Genre)))
	if genre != "" && !genre.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid genre filter: %s", in.Genre))
	}

	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("invalid sortBy: %s", sortBy))
	}

	order := strings.ToLower(in.Order)
	switch order {
	case "":
		order = "desc"
	case "asc", "desc":
	default:
		return nil, apperr.Validation("sort must be asc or desc")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	list, err := s.repo.List(ctx, genre, column, order, limit)
	if err != nil {
		return nil, apperr.Store("could not list books", err)
	}
	return list, nil
}

func (s *bookService) Update(ctx context.Context, id int64, in UpdateBookInput) (*models.Book, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		existing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		if strings.TrimSpace(*in.Author) == "" {
			return nil, apperr.Validation("author cannot be empty")
		}
		existing.Author = strings.TrimSpace(*in.Author)
	}
	if in.Genre != nil {
		if !in.Genre.Valid() {
			return nil, apperr.Validation(fmt.Sprintf("invalid genre: %s", *in.Genre))
		}
		existing.Genre = *in.Genre
	}
	if in.ISBN != nil {
		if strings.TrimSpace(*in.ISBN) == "" {
			return nil, apperr.Validation("isbn cannot be empty")
		}
		existing.ISBN = strings.TrimSpace(*in.ISBN)
	}
	if in.Description != nil {
		existing.Description = in.Description
	}
	if in.Copies != nil {
		if *in.Copies < 0 {
			return nil, apperr.Validation("copies must be a positive number")
		}
		existing.Copies = *in.Copies
	}

	// repo.Update re-derives available in the same transaction, so a
	// copies change can never leave the flag stale
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateISBN) {
			return nil, apperr.Validation("isbn already exists")
		}
		return nil, apperr.Store("could not update book", err)
	}
	return existing, nil
}

// RecomputeAvailability re-derives available from copies. A missing book is
// logged and swallowed; callers treat this as fire-and-forget.
func (s *bookService) RecomputeAvailability(ctx context.Context, id int64) error {
	found, err := s.repo.RecomputeAvailability(ctx, id)
	if err != nil {
		return apperr.Store("could not recompute availability", err)
	}
	if !found {
		s.logger.Warn("book not found for availability update", "book_id", id)
	}
	return nil
}
