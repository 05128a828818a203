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

type UserHandler struct {
	Collection  *mongo.Collection
	AuditLogger utils.Logger
}

func NewUserHandler(coll *mongo.Collection, logger utils.Logger) *UserHandler {
	return &UserHandler{Collection: coll, AuditLogger: logger}
}

// POST /api/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.NewUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if !models.IsValidBirthDate(req.BirthDate) {
		e := apperr.New(apperr.Validation, "Invalid date format")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.Collection.FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		e := apperr.New(apperr.Conflict, "User already exist")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to check email", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	user := req.User()
	res, err := h.Collection.InsertOne(ctx, user)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Insert failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	h.AuditLogger.Log(ctx, models.UserEntity, constants.Create, user)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// GET /api/user
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.Collection.Find(ctx, bson.M{})
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch users", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		utils.JSONError(w, "Error decoding users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	json.NewEncoder(w).Encode(users)
}

// DELETE /api/user/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := h.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		e := apperr.New(apperr.NotFound, "User not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	if _, err := h.Collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Delete failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	h.AuditLogger.Log(ctx, models.UserEntity, constants.Delete, userID.Hex())

	json.NewEncoder(w).Encode(user)
}

// POST /api/user/search
//
// Unlike the book search, an empty criteria set is rejected here.
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req models.SearchUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	filter := query.UserFilter(req)
	if filter.Empty() {
		e := apperr.New(apperr.NoCriteria, "No search criteria provided")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.Collection.Find(ctx, filter.Doc())
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to search users", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		utils.JSONError(w, "Error decoding users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	json.NewEncoder(w).Encode(users)
}

// PUT /api/user/{id}
//
// Same no-op policy as the book update: all fields absent means no write.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if req.BirthDate != nil && !models.IsValidBirthDate(*req.BirthDate) {
		e := apperr.New(apperr.Validation, "Invalid date format")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := query.UserSet(req)
	if !set.Empty() {
		res, err := h.Collection.UpdateOne(ctx, bson.M{"_id": userID}, set.Doc())
		if err != nil {
			e := apperr.Wrap(apperr.Infrastructure, "Update failed", err)
			utils.JSONError(w, e.Error(), apperr.StatusCode(e))
			return
		}
		if res.MatchedCount == 0 {
			e := apperr.New(apperr.NotFound, "User not found")
			utils.JSONError(w, e.Error(), apperr.StatusCode(e))
			return
		}
		h.AuditLogger.Log(ctx, models.UserEntity, constants.Update, set.Fields())
	}

	var user models.User
	if err := h.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		e := apperr.New(apperr.NotFound, "User not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	json.NewEncoder(w).Encode(user)
}
