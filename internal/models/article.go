package models

import "time"

// Article is a blog post. Content holds the raw markup; rendering happens at
// template time.
type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:250;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	LastChange  time.Time `gorm:"not null" json:"last_change"`
	Public      bool      `gorm:"not null;default:false" json:"public"`
	Commentable bool      `gorm:"not null;default:false" json:"commentable"`
}

// ArticleListing is an Article joined with its author name and comment count,
// as shown on index and overview pages.
type ArticleListing struct {
	Article
	Author       string `json:"author"`
	CommentCount int    `json:"comment_count"`
}

// ArticleMonth is one entry of the archive menu: a month with at least one
// public article.
type ArticleMonth struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Count int `json:"count"`
}
