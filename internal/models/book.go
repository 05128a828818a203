package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoGenreID is stored in gender_id while a book has no genre assigned.
// It is the hex form of the zero ObjectID.
const NoGenreID = "000000000000000000000000"

const BookEntity = "book"

type Book struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Author       string             `bson:"author" json:"author"`
	Year         int                `bson:"year" json:"year"`
	Resume       string             `bson:"resume" json:"resume"`
	Availability bool               `bson:"availability" json:"availability"`
	GenderID     string             `bson:"gender_id" json:"gender_id"`
}

// RatedBook is the shape produced by the rating aggregation: a book plus
// its computed average. AverageRating stays nil for books without comments.
type RatedBook struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	Year          int                `bson:"year" json:"year"`
	Resume        string             `bson:"resume" json:"resume"`
	Availability  bool               `bson:"availability" json:"availability"`
	GenderID      string             `bson:"gender_id" json:"gender_id"`
	AverageRating *float64           `bson:"average_rating,omitempty" json:"average_rating,omitempty"`
}

type NewBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Resume string `json:"resume"`
}

type UpdateBook struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Year         *int    `json:"year"`
	Resume       *string `json:"resume"`
	Availability *bool   `json:"availability"`
	GenderID     *string `json:"gender_id"`
}

type SearchBook struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *int    `json:"year"`
}

// Book builds the stored record: new books start available and without
// a genre.
func (n NewBook) Book() Book {
	return Book{
		Title:        n.Title,
		Author:       n.Author,
		Year:         n.Year,
		Resume:       n.Resume,
		Availability: true,
		GenderID:     NoGenreID,
	}
}

func (b Book) HasGenre() bool {
	return b.GenderID != "" && b.GenderID != NoGenreID
}
