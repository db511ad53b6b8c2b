package model

import (
	"time"
)

// User represents the database model for accounts
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null;size:150"`
	Email        string    `gorm:"uniqueIndex;not null;size:254"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	PasswordHash string    `gorm:"not null;size:255"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Profile *Profile `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Profile represents the database model for the role and contact details
// attached one-to-one to a user
type Profile struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"uniqueIndex;not null"`
	Role        string `gorm:"not null;size:20;default:FINANCE"`
	PhoneNumber string `gorm:"size:20"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
