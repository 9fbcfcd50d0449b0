package dto_test

import (
	"testing"
	"time"

	"libraryhub/internal/http-api/dto"

	"github.com/stretchr/testify/assert"
)

func TestParseDueDate(t *testing.T) {
	t.Run("PlainDate", func(t *testing.T) {
		d := dto.CreateBorrowDTO{DueDate: "2025-01-01"}
		got, err := d.ParseDueDate()
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("RFC3339", func(t *testing.T) {
		d := dto.CreateBorrowDTO{DueDate: "2025-06-15T10:30:00Z"}
		got, err := d.ParseDueDate()
		assert.NoError(t, err)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.June, got.Month())
	})

	t.Run("Garbage", func(t *testing.T) {
		d := dto.CreateBorrowDTO{DueDate: "next tuesday"}
		_, err := d.ParseDueDate()
		assert.Error(t, err)
	})
}
