package models

import "time"

// Product adalah katalog varian snack. Harga bisa diubah, tapi tidak
// mengubah subtotal OrderItem yang sudah tercatat (snapshot).
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     int       `gorm:"not null;default:5000" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
