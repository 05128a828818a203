package query

import (
	"github.com/code-ex0/bibliotheca/internal/models"
)

// Per-entity mapping tables. Each function enumerates every updatable or
// searchable field of its entity, so the set of reachable field names is
// fixed at compile time.

func BookSet(u models.UpdateBook) *Set {
	s := &Set{}
	s.Text("title", u.Title)
	s.Text("author", u.Author)
	s.Int("year", u.Year)
	s.Text("resume", u.Resume)
	s.Bool("availability", u.Availability)
	s.Text("gender_id", u.GenderID)
	return s
}

func UserSet(u models.UpdateUser) *Set {
	s := &Set{}
	s.Text("first_name", u.FirstName)
	s.Text("last_name", u.LastName)
	s.Text("email", u.Email)
	s.Text("birth_date", u.BirthDate)
	s.TextList("borrowed_books", u.BorrowedBooks)
	s.Text("role", u.Role)
	return s
}

func BookFilter(sb models.SearchBook) *Filter {
	f := &Filter{}
	f.Text("title", sb.Title)
	f.Text("author", sb.Author)
	f.Int("year", sb.Year)
	return f
}

func UserFilter(su models.SearchUser) *Filter {
	f := &Filter{}
	f.Text("first_name", su.FirstName)
	f.Text("last_name", su.LastName)
	f.Text("email", su.Email)
	return f
}
