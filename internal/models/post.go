package models

import "gorm.io/gorm"

// Post belongs to exactly one author, set at creation. Ownership is carried
// as a plain identifier, no foreign key constraint and no cascade.
type Post struct {
	gorm.Model

	Title    string `gorm:"not null"`
	Content  string `gorm:"not null"`
	Slug     string `gorm:"index"`
	AuthorID uint   `gorm:"not null;index"`
}
