package dto

import (
	"libraryhub/internal/http-api/models"
	"libraryhub/internal/http-api/service"
)

// CreateBookDTO used for POST /api/books
type CreateBookDTO struct {
	Title       string        `json:"title" binding:"required"`
	Author      string        `json:"author" binding:"required"`
	Genre       *models.Genre `json:"genre,omitempty"`
	ISBN        string        `json:"isbn" binding:"required"`
	Description *string       `json:"description,omitempty"`
	Copies      *int          `json:"copies" binding:"required"`
}

func (d CreateBookDTO) ToModel() models.Book {
	b := models.Book{
		Title:       d.Title,
		Author:      d.Author,
		ISBN:        d.ISBN,
		Description: d.Description,
	}
	if d.Genre != nil {
		b.Genre = *d.Genre
	}
	if d.Copies != nil {
		b.Copies = *d.Copies
	}
	return b
}

// UpdateBookDTO used for PUT /api/books/:bookId (partial updates allowed)
type UpdateBookDTO struct {
	Title       *string       `json:"title,omitempty"`
	Author      *string       `json:"author,omitempty"`
	Genre       *models.Genre `json:"genre,omitempty"`
	ISBN        *string       `json:"isbn,omitempty"`
	Description *string       `json:"description,omitempty"`
	Copies      *int          `json:"copies,omitempty"`
}

func (d UpdateBookDTO) ToInput() service.UpdateBookInput {
	return service.UpdateBookInput{
		Title:       d.Title,
		Author:      d.Author,
		Genre:       d.Genre,
		ISBN:        d.ISBN,
		Description: d.Description,
		Copies:      d.Copies,
	}
}
