package model

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"not null;default:user" json:"role"`
}

type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"not null" json:"title"`
	Author string `gorm:"not null" json:"author"`
	Year   int    `gorm:"not null" json:"year"`
	Genre  string `gorm:"not null" json:"genre"`
}

type Reader struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Phone string `gorm:"not null" json:"phone"`
}

// BorrowedBook records a loan. The loan is open while ReturnDate is nil.
type BorrowedBook struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"not null" json:"book_id"`
	ReaderID   uint       `gorm:"not null" json:"reader_id"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
}
