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

type BookHandler struct {
	BookCollection *mongo.Collection
	UserCollection *mongo.Collection
	AuditLogger    utils.Logger
}

func NewBookHandler(bookColl, userColl *mongo.Collection, logger utils.Logger) *BookHandler {
	return &BookHandler{
		BookCollection: bookColl,
		UserCollection: userColl,
		AuditLogger:    logger,
	}
}

// POST /api/book
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req models.NewBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	book := req.Book()
	res, err := h.BookCollection.InsertOne(ctx, book)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Insert failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	book.ID = res.InsertedID.(primitive.ObjectID)

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Create, book)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// GET /api/book
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.BookCollection.Find(ctx, bson.M{})
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to fetch books", err)
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

// GET /api/book/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var book models.Book
	if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book); err != nil {
		e := apperr.New(apperr.NotFound, "Book not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	json.NewEncoder(w).Encode(book)
}

// PUT /api/book/{id}
//
// Only the supplied fields are written. When every field is absent the
// update is skipped entirely and the stored record is returned as is.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := query.BookSet(req)
	if !set.Empty() {
		res, err := h.BookCollection.UpdateOne(ctx, bson.M{"_id": bookID}, set.Doc())
		if err != nil {
			e := apperr.Wrap(apperr.Infrastructure, "Update failed", err)
			utils.JSONError(w, e.Error(), apperr.StatusCode(e))
			return
		}
		if res.MatchedCount == 0 {
			e := apperr.New(apperr.NotFound, "Book not found")
			utils.JSONError(w, e.Error(), apperr.StatusCode(e))
			return
		}
		h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, set.Fields())
	}

	var book models.Book
	if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book); err != nil {
		e := apperr.New(apperr.NotFound, "Book not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	json.NewEncoder(w).Encode(book)
}

// DELETE /api/book/{id}
//
// The record is read before deletion so the response carries its prior
// state.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var book models.Book
	if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book); err != nil {
		e := apperr.New(apperr.NotFound, "Book not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	if _, err := h.BookCollection.DeleteOne(ctx, bson.M{"_id": bookID}); err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Delete failed", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Delete, bookID.Hex())

	json.NewEncoder(w).Encode(book)
}

// POST /api/book/search
//
// Equality match over the provided fields. No criteria means an empty
// result, not an error, and no query is issued.
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	var req models.SearchBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	filter := query.BookFilter(req)
	if filter.Empty() {
		json.NewEncoder(w).Encode([]models.Book{})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.BookCollection.Find(ctx, filter.Doc())
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to search books", err)
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

// POST /api/book/{id}/{user_id}/borrow
//
// The availability flip is conditional on the flag still being true, so
// two concurrent borrows cannot both win; the list append uses $addToSet
// so a book id never appears twice in borrowed_books.
func (h *BookHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}
	userID, err := primitive.ObjectIDFromHex(vars["user_id"])
	if err != nil {
		utils.JSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var book models.Book
	if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book); err != nil {
		e := apperr.New(apperr.NotFound, "Book not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	var user models.User
	if err := h.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		e := apperr.New(apperr.NotFound, "User not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	if !book.Availability {
		e := apperr.New(apperr.DomainRule, "Book not available")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	res, err := h.BookCollection.UpdateOne(ctx,
		bson.M{"_id": bookID, "availability": true},
		bson.M{"$set": bson.M{"availability": false}},
	)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to update book", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	if res.MatchedCount == 0 {
		// a concurrent borrow flipped the flag between read and write
		e := apperr.New(apperr.DomainRule, "Book not available")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	_, err = h.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"borrowed_books": bookID.Hex()}},
	)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to update user", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	book.Availability = false
	user.AddBorrowed(bookID.Hex())

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Borrow, bson.M{
		"book_id": bookID.Hex(),
		"user_id": userID.Hex(),
	})

	json.NewEncoder(w).Encode([]any{user, book})
}

// POST /api/book/{id}/{user_id}/return
func (h *BookHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.JSONError(w, "Invalid book ID", http.StatusBadRequest)
		return
	}
	userID, err := primitive.ObjectIDFromHex(vars["user_id"])
	if err != nil {
		utils.JSONError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var book models.Book
	if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book); err != nil {
		e := apperr.New(apperr.NotFound, "Book not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	var user models.User
	if err := h.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		e := apperr.New(apperr.NotFound, "User not found")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	if book.Availability {
		e := apperr.New(apperr.DomainRule, "Book not borrowed")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	res, err := h.BookCollection.UpdateOne(ctx,
		bson.M{"_id": bookID, "availability": false},
		bson.M{"$set": bson.M{"availability": true}},
	)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to update book", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}
	if res.MatchedCount == 0 {
		e := apperr.New(apperr.DomainRule, "Book not borrowed")
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	_, err = h.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"borrowed_books": bookID.Hex()}},
	)
	if err != nil {
		e := apperr.Wrap(apperr.Infrastructure, "Failed to update user", err)
		utils.JSONError(w, e.Error(), apperr.StatusCode(e))
		return
	}

	book.Availability = true
	user.RemoveBorrowed(bookID.Hex())

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Return, bson.M{
		"book_id": bookID.Hex(),
		"user_id": userID.Hex(),
	})

	json.NewEncoder(w).Encode([]any{user, book})
}
