package domain

import "time"

// Book is owned by the user who created it. Only the owner may delete it;
// no other mutation exists.
type Book struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"not null"`
	Caption string `json:"caption" gorm:"not null"`
	Rating  int    `json:"rating" gorm:"not null"`
	Image   string `json:"image" gorm:"not null"`
	// Provider id of the uploaded cover, kept so the asset can be destroyed
	// when the book is deleted.
	ImagePublicID string    `json:"-"`
	UserID        string    `json:"user" gorm:"index;not null"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Favorite links a user to a book. The composite unique index is the
// authoritative guard against duplicates; application pre-checks only make
// the common case fail fast.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user" gorm:"uniqueIndex:idx_favorites_user_book;not null"`
	BookID    string    `json:"bookId" gorm:"uniqueIndex:idx_favorites_user_book;not null"`
	Book      *Book     `json:"book,omitempty" gorm:"foreignKey:BookID;references:ID"`
	CreatedAt time.Time `json:"createdAt"`
}
