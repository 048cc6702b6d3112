package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string  `gorm:"not null"                   json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                   json:"price"`
	Stock       int     `gorm:"not null;check:stock >= 0"  json:"stock"`
}

type Cart struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null"     json:"user_id"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"    json:"id"`
	CartID    uint `gorm:"index;not null"              json:"cart_id"`
	ProductID uint `gorm:"not null"                    json:"product_id"`
	Quantity  int  `gorm:"not null;check:quantity > 0" json:"quantity"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Total     float64   `gorm:"not null"                 json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	ProductID uint    `gorm:"not null"                 json:"product_id"`
	Quantity  int     `gorm:"not null"                 json:"quantity"`
	Price     float64 `gorm:"not null"                 json:"price"`
}
