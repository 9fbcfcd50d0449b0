package models

import "time"

type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
)

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreScience, GenreHistory, GenreBiography, GenreFantasy:
		return true
	}
	return false
}

type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Author      string    `json:"author" gorm:"not null"`
	Genre       Genre     `json:"genre" gorm:"type:varchar(20);not null;default:'FICTION'"`
	ISBN        string    `json:"isbn" gorm:"uniqueIndex;not null;size:30"`
	Description *string   `json:"description,omitempty"`
	Copies      int       `json:"copies" gorm:"not null;check:copies >= 0"`
	Available   bool      `json:"available" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}
