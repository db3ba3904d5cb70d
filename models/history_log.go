package models

import "time"

const (
	HistoryTypeOrder   = "ORDER"
	HistoryTypeExpense = "EXPENSE"
)

// HistoryLog adalah audit trail append-only: hanya dibuat, tidak pernah diupdate.
type HistoryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"` // ORDER | EXPENSE
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
