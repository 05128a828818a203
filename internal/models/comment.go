package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CommentEntity = "comment"

type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  string             `bson:"user_id" json:"user_id"`
	BookID  string             `bson:"book_id" json:"book_id"`
	Comment string             `bson:"comment" json:"comment"`
	Rating  int                `bson:"rating" json:"rating"`
}

type NewComment struct {
	UserID  string `json:"user_id"`
	BookID  string `json:"book_id"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type SearchByRating struct {
	Operator string  `json:"operator"`
	Rating   float64 `json:"rating"`
}

func (n NewComment) ToComment() Comment {
	return Comment{
		UserID:  n.UserID,
		BookID:  n.BookID,
		Comment: n.Comment,
		Rating:  n.Rating,
	}
}

// AverageRating is the arithmetic mean of the ratings. The caller must
// handle the empty slice; zero comments have no defined average.
func AverageRating(comments []Comment) float64 {
	var sum float64
	for _, c := range comments {
		sum += float64(c.Rating)
	}
	return sum / float64(len(comments))
}
