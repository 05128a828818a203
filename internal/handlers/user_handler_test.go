package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/code-ex0/bibliotheca/internal/handlers"
	"github.com/code-ex0/bibliotheca/internal/models"
	"github.com/code-ex0/bibliotheca/internal/utils"
)

func TestUserHandler_CreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful registration", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection:  mt.Coll,
			AuditLogger: utils.Logger{Collection: mt.Coll},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		router := mux.NewRouter()
		router.HandleFunc("/api/user", handler.CreateUser).Methods("POST")

		body, _ := json.Marshal(models.NewUser{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			BirthDate: "1990-04-23",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status Created, got %v: %s", w.Code, w.Body.String())
		}

		var user models.User
		if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if user.Role != "user" {
			t.Errorf("role = %q, want user", user.Role)
		}
		if len(user.BorrowedBooks) != 0 {
			t.Errorf("borrowed_books = %v, want empty", user.BorrowedBooks)
		}
	})

	mt.Run("invalid birth date", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		router := mux.NewRouter()
		router.HandleFunc("/api/user", handler.CreateUser).Methods("POST")

		body, _ := json.Marshal(models.NewUser{
			FirstName: "Jane",
			Email:     "jane@example.com",
			BirthDate: "23-04-1990",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid date format") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.users", mtest.FirstBatch,
			userDoc(primitive.NewObjectID())))

		router := mux.NewRouter()
		router.HandleFunc("/api/user", handler.CreateUser).Methods("POST")

		body, _ := json.Marshal(models.NewUser{
			FirstName: "Jane",
			Email:     "jane@example.com",
			BirthDate: "1990-04-23",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected status Conflict, got %v", w.Code)
		}
		if !strings.Contains(w.Body.String(), "User already exist") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestUserHandler_SearchUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("no criteria is an error", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		router := mux.NewRouter()
		router.HandleFunc("/api/user/search", handler.SearchUsers).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/api/user/search", strings.NewReader("{}"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Code)
		}
		if !strings.Contains(w.Body.String(), "No search criteria provided") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	mt.Run("matches on provided fields", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			userDoc(primitive.NewObjectID())))

		router := mux.NewRouter()
		router.HandleFunc("/api/user/search", handler.SearchUsers).Methods("POST")

		body, _ := json.Marshal(models.SearchUser{Email: strPtr("jane@example.com")})
		req := httptest.NewRequest(http.MethodPost, "/api/user/search", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}

		var users []models.User
		if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(users) != 1 || users[0].Email != "jane@example.com" {
			t.Errorf("unexpected result: %+v", users)
		}
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("all fields absent skips the update", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		userID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.users", mtest.FirstBatch,
			userDoc(userID)))

		router := mux.NewRouter()
		router.HandleFunc("/api/user/{id}", handler.UpdateUser).Methods("PUT")

		req := httptest.NewRequest(http.MethodPut, "/api/user/"+userID.Hex(), strings.NewReader("{}"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}

		var user models.User
		if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if user.FirstName != "Jane" {
			t.Errorf("expected stored record back, got %+v", user)
		}
	})

	mt.Run("invalid birth date", func(mt *mtest.T) {
		handler := handlers.UserHandler{
			Collection: mt.Coll,
		}

		router := mux.NewRouter()
		router.HandleFunc("/api/user/{id}", handler.UpdateUser).Methods("PUT")

		req := httptest.NewRequest(http.MethodPut, "/api/user/"+primitive.NewObjectID().Hex(),
			strings.NewReader(`{"birth_date":"not-a-date"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status BadRequest, got %v", w.Code)
		}
	})
}
