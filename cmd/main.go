package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/code-ex0/bibliotheca/configs"
	"github.com/code-ex0/bibliotheca/internal/daemon"
	"github.com/code-ex0/bibliotheca/internal/db"
	"github.com/code-ex0/bibliotheca/internal/handlers"
	"github.com/code-ex0/bibliotheca/internal/middleware"
	"github.com/code-ex0/bibliotheca/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditCol}

	bookColl := db.GetCollection(cfg.DBName, "books")
	userColl := db.GetCollection(cfg.DBName, "users")
	genreColl := db.GetCollection(cfg.DBName, "genres")
	commentColl := db.GetCollection(cfg.DBName, "comments")

	bookHandler := handlers.NewBookHandler(bookColl, userColl, auditLogger)

	r.HandleFunc("/api/book", bookHandler.CreateBook).Methods("POST")
	r.HandleFunc("/api/book", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/api/book/search", bookHandler.SearchBooks).Methods("POST")
	r.HandleFunc("/api/book/{id}", bookHandler.GetBook).Methods("GET")
	r.HandleFunc("/api/book/{id}", bookHandler.UpdateBook).Methods("PUT")
	r.HandleFunc("/api/book/{id}", bookHandler.DeleteBook).Methods("DELETE")
	r.HandleFunc("/api/book/{id}/{user_id}/borrow", bookHandler.BorrowBook).Methods("POST")
	r.HandleFunc("/api/book/{id}/{user_id}/return", bookHandler.ReturnBook).Methods("POST")

	userHandler := handlers.NewUserHandler(userColl, auditLogger)

	r.HandleFunc("/api/user", userHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", userHandler.GetUsers).Methods("GET")
	r.HandleFunc("/api/user/search", userHandler.SearchUsers).Methods("POST")
	r.HandleFunc("/api/user/{id}", userHandler.DeleteUser).Methods("DELETE")
	r.HandleFunc("/api/user/{id}", userHandler.UpdateUser).Methods("PUT")

	genreHandler := handlers.NewGenreHandler(genreColl, auditLogger)

	r.HandleFunc("/api/genre", genreHandler.CreateGenre).Methods("POST")
	r.HandleFunc("/api/genre", genreHandler.GetGenres).Methods("GET")
	r.HandleFunc("/api/genre/{name}", genreHandler.GetBooksByGenre).Methods("GET")

	commentHandler := handlers.NewCommentHandler(commentColl, bookColl, auditLogger)

	r.HandleFunc("/api/comment", commentHandler.CreateComment).Methods("POST")
	r.HandleFunc("/api/comment", commentHandler.GetComments).Methods("GET")
	r.HandleFunc("/api/comment/search/rating", commentHandler.SearchBooksByRating).Methods("GET")
	r.HandleFunc("/api/comment/rating/{book_id}", commentHandler.GetRatingByBook).Methods("GET")
	r.HandleFunc("/api/comment/user/{user_id}", commentHandler.GetCommentsByUser).Methods("GET")
	r.HandleFunc("/api/comment/{book_id}", commentHandler.GetCommentsByBook).Methods("GET")

	exporter := daemon.LogExporter{Coll: auditCol}
	exporter.InitLogExporter()

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		log.Fatal(server.ListenAndServe())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
