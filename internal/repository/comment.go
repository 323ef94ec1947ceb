package repository

import (
	"github.com/ublog-dev/ublog/internal/models"
)

// CommentByID returns one comment with its author's display name.
func (r *Repository) CommentByID(id uint) (*models.CommentListing, error) {
	var c models.CommentListing
	err := r.db.Model(&models.Comment{}).
		Select("comments.*, users.author").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CommentsByArticle returns an article's comments with author names, newest
// first.
func (r *Repository) CommentsByArticle(articleID uint) ([]models.CommentListing, error) {
	var comments []models.CommentListing
	err := r.db.Model(&models.Comment{}).
		Select("comments.*, users.author").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.article_id = ?", articleID).
		Order("comments.date DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (r *Repository) CreateComment(c *models.Comment) error {
	return translate(r.db.Create(c).Error)
}

func (r *Repository) DeleteComment(id uint) error {
	return translate(r.db.Delete(&models.Comment{}, id).Error)
}
