package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null"             json:"name"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `gorm:"not null"             json:"createdAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Order struct {
	OrderID      string    `gorm:"column:order_id;primaryKey"     json:"orderId"`
	Value        int64     `gorm:"not null"                       json:"value"`
	CreationDate time.Time `gorm:"column:creation_date;not null;index" json:"creationDate"`
	Items        []Item    `gorm:"foreignKey:OrderID;references:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

type Item struct {
	ID        uint   `gorm:"primaryKey"                      json:"id"`
	OrderID   string `gorm:"column:order_id;index;not null"  json:"orderId"`
	ProductID int64  `gorm:"not null"                        json:"productId"`
	Quantity  int    `gorm:"not null;check:quantity > 0"     json:"quantity"`
	Price     int64  `gorm:"not null"                        json:"price"`
}

func (Item) TableName() string { return "items" }

func All() []any {
	return []any{&User{}, &Order{}, &Item{}}
}
