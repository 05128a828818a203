package handlers

import (
	"context"
	"encoding/json"
	"errors"
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

type GenreHandler struct {
	Collection  *mongo.Collection
	AuditLogger utils.Logger
}

func NewGenreHandler(coll *mongo.Collection, logger utils.Logger) *GenreHandler {
	return &GenreHandler{Collection: coll, AuditLogger: logger}
}

// POST /api/genre
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var genre models.Genre
	if err := json.NewDecoder(r.Body).Decode(&genre); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.Collection.FindOne(ctx, bson.M{"name": genre.Name}).Err()
	if err == nil {
		e := apperr.New(apperr.Conflict, "Genre already exist")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to check genre name", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	res, err := h.Collection.InsertOne(ctx, genre)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Insert failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	genre.ID = res.InsertedID.(primitive.ObjectID)

	h.AuditLogger.Log(ctx, models.GenreEntity, constants.Create, genre)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(genre)
}

// GET /api/genre
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.Collection.Find(ctx, bson.M{})
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch genres", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var genres []models.Genre
	if err = cursor.All(ctx, &genres); err != nil {
		utils.JSONError(w, "Error decoding genres", http.StatusInternalServerError)
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}

	json.NewEncoder(w).Encode(genres)
}

// GET /api/genre/{name}
//
// Books tagged with the genre, gender_id rewritten to the genre's name.
// An unknown name yields an empty list.
func (h *GenreHandler) GetBooksByGenre(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.Collection.Aggregate(ctx, query.BooksByGenre(name))
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch books by genre", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err = cursor.All(ctx, &books); err != nil {
		utils.JSONError(w, "Error decoding books", http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	json.NewEncoder(w).Encode(books)
}
