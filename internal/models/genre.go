package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const GenreEntity = "genre"

type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
