package models

import "time"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	Date          time.Time   `gorm:"type:date;not null" json:"date"`
	PaymentMethod string      `gorm:"type:varchar(20);not null;default:'Cash'" json:"payment_method"` // QRIS | Cash
	PaymentStatus bool        `gorm:"not null;default:false" json:"payment_status"`
	IsReceived    bool        `gorm:"not null;default:false" json:"is_received"`
	Description   string      `gorm:"type:text" json:"description"`
	TotalItems    int         `gorm:"not null;default:0" json:"total_items"`
	TotalPrice    int         `gorm:"not null;default:0" json:"total_price"`
	AdminID       *uint       `gorm:"index" json:"admin_id,omitempty"`
	Admin         *Admin      `gorm:"foreignKey:AdminID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"admin,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
