package model

import "time"

// User 市场用户
// PasswordHash 仅存 bcrypt 散列，永不下发
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
}

func (*User) TableName() string {
	return "users"
}
