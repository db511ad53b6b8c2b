package model

import (
	"time"
)

// Transaction represents the database model for contribution records
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	MemberName    string    `gorm:"not null;size:255"`
	PhoneNumber   string    `gorm:"size:20"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	Category      string    `gorm:"not null;size:20;index"`
	PaymentType   string    `gorm:"not null;size:20"`
	Status        string    `gorm:"not null;size:20;index"`
	Receipt       string    `gorm:"size:255"`
	MpesaRef      string    `gorm:"size:100"`
	RecordedBy    *uint64   `gorm:"index"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`

	// RecordedBy references the profile of the staff member who keyed the
	// record in. Gateway-originated records leave it null.
	RecordedByProfile *Profile `gorm:"foreignKey:RecordedBy;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
