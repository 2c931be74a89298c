package auth

import "time"

type User struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Username     string `gorm:"size:50;not null;uniqueIndex:ux_users_username"`
	PasswordHash string `gorm:"size:255;not null"`
	Country      string `gorm:"size:50;not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
