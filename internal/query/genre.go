package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BooksByGenre resolves a genre by name and pulls in every book tagged
// with its id, rewriting gender_id to the genre's display name. Runs on
// the genres collection; no match on the name yields an empty result.
func BooksByGenre(name string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"name": name}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "books",
			"let": bson.M{
				"genre_name": "$name",
				"genre_id":   bson.M{"$toString": "$_id"},
			},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$eq": bson.A{"$gender_id", "$$genre_id"}},
				}},
				bson.M{"$project": bson.M{
					"_id":          1,
					"title":        1,
					"author":       1,
					"year":         1,
					"resume":       1,
					"availability": 1,
					"gender_id":    "$$genre_name",
				}},
			},
			"as": "books",
		}}},
		{{Key: "$unwind", Value: "$books"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$books"}}},
	}
}
