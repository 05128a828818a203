package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ratingOperators = map[string]string{
	"=":  "$eq",
	"!=": "$ne",
	">":  "$gt",
	">=": "$gte",
	"<":  "$lt",
	"<=": "$lte",
}

// RatingOperator translates the wire operator into its mongo counterpart.
// Unknown operators fall back to equality.
func RatingOperator(op string) string {
	if m, ok := ratingOperators[op]; ok {
		return m
	}
	return "$eq"
}

// BooksByRating joins every book with its comments, averages the ratings
// and keeps the books whose average satisfies the operator. Books without
// comments group to a null average and follow the server's null-comparison
// semantics in the $match stage.
func BooksByRating(operator string, rating float64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"book_id_str": bson.M{"$toString": "$_id"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "comments",
			"localField":   "book_id_str",
			"foreignField": "book_id",
			"as":           "comments",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$comments",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$_id",
			"title":          bson.M{"$first": "$title"},
			"author":         bson.M{"$first": "$author"},
			"year":           bson.M{"$first": "$year"},
			"resume":         bson.M{"$first": "$resume"},
			"availability":   bson.M{"$first": "$availability"},
			"average_rating": bson.M{"$avg": "$comments.rating"},
			"gender_id":      bson.M{"$first": "$gender_id"},
		}}},
		{{Key: "$match", Value: bson.M{
			"average_rating": bson.M{RatingOperator(operator): rating},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":            1,
			"title":          1,
			"author":         1,
			"year":           1,
			"resume":         1,
			"availability":   1,
			"average_rating": 1,
			"gender_id":      1,
		}}},
	}
}
