package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UserEntity = "user"

const BirthDateLayout = "2006-01-02"

const RoleUser = "user"

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	Email         string             `bson:"email" json:"email"`
	BirthDate     string             `bson:"birth_date" json:"birth_date"`
	BorrowedBooks []string           `bson:"borrowed_books" json:"borrowed_books"`
	Role          string             `bson:"role" json:"role"`
}

type NewUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

type UpdateUser struct {
	FirstName     *string   `json:"first_name"`
	LastName      *string   `json:"last_name"`
	Email         *string   `json:"email"`
	BirthDate     *string   `json:"birth_date"`
	BorrowedBooks *[]string `json:"borrowed_books"`
	Role          *string   `json:"role"`
}

type SearchUser struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

func (n NewUser) User() User {
	return User{
		FirstName:     n.FirstName,
		LastName:      n.LastName,
		Email:         n.Email,
		BirthDate:     n.BirthDate,
		BorrowedBooks: []string{},
		Role:          RoleUser,
	}
}

func IsValidBirthDate(date string) bool {
	_, err := time.Parse(BirthDateLayout, date)
	return err == nil
}

func (u *User) HasBorrowed(bookID string) bool {
	for _, id := range u.BorrowedBooks {
		if id == bookID {
			return true
		}
	}
	return false
}

// AddBorrowed appends the book id at most once, mirroring the $addToSet
// write issued against the store.
func (u *User) AddBorrowed(bookID string) {
	if u.HasBorrowed(bookID) {
		return
	}
	u.BorrowedBooks = append(u.BorrowedBooks, bookID)
}

// RemoveBorrowed drops every occurrence, mirroring the $pull write.
func (u *User) RemoveBorrowed(bookID string) {
	kept := u.BorrowedBooks[:0]
	for _, id := range u.BorrowedBooks {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	u.BorrowedBooks = kept
}
