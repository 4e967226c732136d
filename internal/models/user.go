package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:26" bson:"_id" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" bson:"username" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
