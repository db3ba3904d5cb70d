package models

import "time"

type ExpenseItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ExpenseID uint    `gorm:"not null;index" json:"expense_id"`
	Expense   Expense `gorm:"foreignKey:ExpenseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	// Quantity bertipe teks bebas ("1 kg", "2 ikat", "-"), tidak pernah diagregasi.
	Quantity  string    `gorm:"type:varchar(100)" json:"quantity"`
	Price     int       `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
