package models

import "gorm.io/gorm"

// User is stored with its password only as a bcrypt hash. Username and
// email are normalized to lowercase before persistence.
type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}
