package models

import "time"

// Expense adalah satu nota belanja stok, beserta estimasi hasil produksi.
type Expense struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Date          time.Time     `gorm:"type:date;not null" json:"date"`
	TotalCost     int           `gorm:"not null;default:0" json:"total_cost"`
	YieldEstimate int           `gorm:"not null;default:0" json:"yield_estimate"`
	Description   string        `gorm:"type:text" json:"description"`
	Items         []ExpenseItem `gorm:"foreignKey:ExpenseID" json:"items"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}
