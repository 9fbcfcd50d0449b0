package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"libraryhub/internal/http-api/apperr"
	"libraryhub/internal/http-api/models"
	"libraryhub/internal/http-api/repository"
	"libraryhub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- MOCK REPOSITORY ---

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepo) List(ctx context.Context, genre models.Genre, sortBy, order string, limit int) ([]models.Book, error) {
	args := m.Called(ctx, genre, sortBy, order, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepo) RecomputeAvailability(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- TESTS ---

func TestBookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("DerivesAvailableFromCopies", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())

		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

		inStock := models.Book{Title: "X", Author: "Y", ISBN: "123", Copies: 5}
		assert.NoError(t, svc.Create(ctx, &inStock))
		assert.True(t, inStock.Available)

		outOfStock := models.Book{Title: "X", Author: "Y", ISBN: "456", Copies: 0}
		assert.NoError(t, svc.Create(ctx, &outOfStock))
		assert.False(t, outOfStock.Available)

		repo.AssertExpectations(t)
	})

	t.Run("DefaultsGenreToFiction", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		b := models.Book{Title: "X", Author: "Y", ISBN: "123", Copies: 1}
		assert.NoError(t, svc.Create(ctx, &b))
		assert.Equal(t, models.GenreFiction, b.Genre)
	})

	t.Run("RejectsMissingFields", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())

		cases := []models.Book{
			{Author: "Y", ISBN: "123", Copies: 1},
			{Title: "X", ISBN: "123", Copies: 1},
			{Title: "X", Author: "Y", Copies: 1},
			{Title: "X", Author: "Y", ISBN: "123", Copies: -1},
			{Title: "X", Author: "Y", ISBN: "123", Copies: 1, Genre: "WESTERN"},
		}
		for _, b := range cases {
			err := svc.Create(ctx, &b)
			assert.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		}
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateISBNIsValidation", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateISBN).Once()

		b := models.Book{Title: "X", Author: "Y", ISBN: "123", Copies: 1}
		err := svc.Create(ctx, &b)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestBookService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestBookService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsAndColumnMapping", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("List", mock.Anything, models.Genre(""), "created_at", "desc", 10).
			Return([]models.Book{}, nil).Once()

		_, err := svc.List(ctx, service.ListBooksInput{})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("GenreFilterUppercased", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("List", mock.Anything, models.GenreFantasy, "created_at", "asc", 5).
			Return([]models.Book{}, nil).Once()

		_, err := svc.List(ctx, service.ListBooksInput{Genre: "fantasy", Order: "asc", Limit: 5})
		assert.NoError(t, err)
	})

	t.Run("RejectsUnknownSortColumn", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())

		_, err := svc.List(ctx, service.ListBooksInput{SortBy: "copies; DROP TABLE books"})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "List")
	})
}

func TestBookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("AppliesPartialFields", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())

		existing := &models.Book{ID: 1, Title: "Old", Author: "A", ISBN: "123", Copies: 3, Available: true}
		repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "New" && b.Copies == 0
		})).Return(nil).Once()

		updated, err := svc.Update(ctx, 1, service.UpdateBookInput{
			Title:  strPtr("New"),
			Copies: intPtr(0),
		})
		assert.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, 0, updated.Copies)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsNegativeCopies", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&models.Book{ID: 1, Title: "T", Author: "A", ISBN: "1", Copies: 3}, nil).Once()

		_, err := svc.Update(ctx, 1, service.UpdateBookInput{Copies: intPtr(-2)})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "Update")
	})
}

func TestBookService_RecomputeAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingBookIsNotFatal", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("RecomputeAvailability", mock.Anything, int64(42)).Return(false, nil).Once()

		assert.NoError(t, svc.RecomputeAvailability(ctx, 42))
	})

	t.Run("StoreErrorSurfaces", func(t *testing.T) {
		repo := new(MockBookRepo)
		svc := service.NewBookService(repo, testLogger())
		repo.On("RecomputeAvailability", mock.Anything, int64(1)).Return(false, assert.AnError).Once()

		err := svc.RecomputeAvailability(ctx, 1)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	})
}
