package models

import "time"

// Comment references its parent post by identifier only. The post's
// existence is checked at creation time; a post deleted later leaves its
// comments orphaned. Only the creation timestamp is tracked.
type Comment struct {
	ID        uint   `gorm:"primarykey"`
	PostID    uint   `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	AuthorID  uint   `gorm:"not null;index"`
	CreatedAt time.Time
}
