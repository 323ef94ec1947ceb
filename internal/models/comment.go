package models

import "time"

// Comment is a remark on an article. Comments are deleted together with
// their article or their author; they never outlive either.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Date      time.Time `gorm:"not null" json:"date"`
}

// CommentListing is a Comment joined with its author's display name.
type CommentListing struct {
	Comment
	Author string `json:"author"`
}
