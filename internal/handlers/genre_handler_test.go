package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/code-ex0/bibliotheca/internal/handlers"
	"github.com/code-ex0/bibliotheca/internal/models"
	"github.com/code-ex0/bibliotheca/internal/utils"
)

func TestGenreHandler_CreateGenre(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful creation", func(mt *mtest.T) {
		handler := handlers.GenreHandler{
			Collection:  mt.Coll,
			AuditLogger: utils.Logger{Collection: mt.Coll},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.genres", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		router := mux.NewRouter()
		router.HandleFunc("/api/genre", handler.CreateGenre).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/api/genre", strings.NewReader(`{"name":"Fiction"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status Created, got %v: %s", w.Code, w.Body.String())
		}

		var genre models.Genre
		if err := json.Unmarshal(w.Body.Bytes(), &genre); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if genre.Name != "Fiction" {
			t.Errorf("name = %q, want Fiction", genre.Name)
		}
	})

	mt.Run("duplicate name", func(mt *mtest.T) {
		handler := handlers.GenreHandler{
			Collection: mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.genres", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Fiction"},
		}))

		router := mux.NewRouter()
		router.HandleFunc("/api/genre", handler.CreateGenre).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/api/genre", strings.NewReader(`{"name":"Fiction"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status Conflict, got %v", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Genre already exist") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestGenreHandler_GetBooksByGenre(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("unknown genre yields empty list", func(mt *mtest.T) {
		handler := handlers.GenreHandler{
			Collection: mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.genres", mtest.FirstBatch))

		router := mux.NewRouter()
		router.HandleFunc("/api/genre/{name}", handler.GetBooksByGenre).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/api/genre/Nowhere", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Errorf("expected empty list, got %q", w.Body.String())
		}
	})

	mt.Run("books carry the genre name", func(mt *mtest.T) {
		handler := handlers.GenreHandler{
			Collection: mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.genres", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Dune"},
			{Key: "author", Value: "Frank Herbert"},
			{Key: "year", Value: 1965},
			{Key: "resume", Value: "Spice and sand"},
			{Key: "availability", Value: true},
			{Key: "gender_id", Value: "Fiction"},
		}))

		router := mux.NewRouter()
		router.HandleFunc("/api/genre/{name}", handler.GetBooksByGenre).Methods("GET")

		req := httptest.NewRequest(http.MethodGet, "/api/genre/Fiction", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}

		var books []models.Book
		if err := json.Unmarshal(w.Body.Bytes(), &books); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(books) != 1 || books[0].GenderID != "Fiction" {
			t.Errorf("unexpected result: %+v", books)
		}
	})
}
