package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/code-ex0/bibliotheca/internal/apperr"
	"github.com/code-ex0/bibliotheca/internal/constants"
	"github.com/code-ex0/bibliotheca/internal/models"
	"github.com/code-ex0/bibliotheca/internal/query"
	"github.com/code-ex0/bibliotheca/internal/utils"
)

type CommentHandler struct {
	CommentCollection *mongo.Collection
	BookCollection    *mongo.Collection
	AuditLogger       utils.Logger
}

func NewCommentHandler(commentColl, bookColl *mongo.Collection, logger utils.Logger) *CommentHandler {
	return &CommentHandler{
		CommentCollection: commentColl,
		BookCollection:    bookColl,
		AuditLogger:       logger,
	}
}

// POST /api/comment
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req models.NewComment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	comment := req.ToComment()
	res, err := h.CommentCollection.InsertOne(ctx, comment)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Insert failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)

	h.AuditLogger.Log(ctx, models.CommentEntity, constants.Create, comment)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

// GET /api/comment
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	h.listComments(w, bson.M{})
}

// GET /api/comment/{book_id}
func (h *CommentHandler) GetCommentsByBook(w http.ResponseWriter, r *http.Request) {
	h.listComments(w, bson.M{"book_id": mux.Vars(r)["book_id"]})
}

// GET /api/comment/user/{user_id}
func (h *CommentHandler) GetCommentsByUser(w http.ResponseWriter, r *http.Request) {
	h.listComments(w, bson.M{"user_id": mux.Vars(r)["user_id"]})
}

func (h *CommentHandler) listComments(w http.ResponseWriter, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.CommentCollection.Find(ctx, filter)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch comments", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		utils.JSONError(w, "Error decoding comments", http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	json.NewEncoder(w).Encode(comments)
}

// GET /api/comment/rating/{book_id}
//
// The mean of all ratings for one book. A book without comments has no
// average; that is reported as not found rather than NaN.
func (h *CommentHandler) GetRatingByBook(w http.ResponseWriter, r *http.Request) {
	bookID := mux.Vars(r)["book_id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.CommentCollection.Find(ctx, bson.M{"book_id": bookID})
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch comments", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		utils.JSONError(w, "Error decoding comments", http.StatusInternalServerError)
		return
	}

	if len(comments) == 0 {
		e := apperr.New(apperr.NotFound, "No ratings for this book")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	json.NewEncoder(w).Encode(models.AverageRating(comments))
}

// GET /api/comment/search/rating
//
// Books whose average rating satisfies the operator from the request body.
func (h *CommentHandler) SearchBooksByRating(w http.ResponseWriter, r *http.Request) {
	var req models.SearchByRating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.BookCollection.Aggregate(ctx, query.BooksByRating(req.Operator, req.Rating))
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to search books by rating", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var books []models.RatedBook
	if err = cursor.All(ctx, &books); err != nil {
		utils.JSONError(w, "Error decoding books", http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.RatedBook{}
	}

	json.NewEncoder(w).Encode(books)
}
