package models

import "time"

// PushSubscription menyimpan kredensial push dari browser admin.
// Endpoint unik; record dihapus kalau push transport melaporkan endpoint sudah mati.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Endpoint  string    `gorm:"type:varchar(500);unique;not null" json:"endpoint"`
	P256dh    string    `gorm:"type:varchar(255);not null" json:"p256dh"`
	Auth      string    `gorm:"type:varchar(255);not null" json:"auth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
