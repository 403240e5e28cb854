package models

import "time"

// Account is an administrator login. Accounts are the only entity kept
// in a real table; everything else lives in the JSON document store.
type Account struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:'admin'"`
}
