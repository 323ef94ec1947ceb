package repository

import (
	"github.com/ublog-dev/ublog/internal/models"
)

func (r *Repository) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByName looks a user up by login name (the email address).
func (r *Repository) UserByName(name string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("name = ?", name).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByAuthor looks a user up by display name.
func (r *Repository) UserByAuthor(author string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("author = ?", author).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *Repository) Users() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Authors lists the active admins that have public articles, with their
// article counts.
func (r *Repository) Authors() ([]models.AuthorListing, error) {
	var authors []models.AuthorListing
	err := r.db.Model(&models.User{}).
		Select("users.id as user_id, users.author, count(articles.id) as count").
		Joins("JOIN articles ON articles.user_id = users.id").
		Where("users.admin = ? AND users.active = ? AND articles.public = ?", true, true, true).
		Group("users.id, users.author").
		Scan(&authors).Error
	if err != nil {
		return nil, translate(err)
	}
	return authors, nil
}

func (r *Repository) CreateUser(u *models.User) error {
	return translate(r.db.Create(u).Error)
}

func (r *Repository) SaveUser(u *models.User) error {
	return translate(r.db.Save(u).Error)
}

// UpdatePassword stores a new hash and salt for the user.
func (r *Repository) UpdatePassword(id uint, password, salt string) error {
	return translate(r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password": password, "salt": salt}).Error)
}

// CommentsByUser returns all of a user's comments, newest article and newest
// comment first.
func (r *Repository) CommentsByUser(userID uint) ([]models.CommentListing, error) {
	var comments []models.CommentListing
	err := r.db.Model(&models.Comment{}).
		Select("comments.*, users.author").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.user_id = ?", userID).
		Order("comments.article_id DESC, comments.date DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

// DeleteUser removes a user and everything they wrote: first the user's own
// comments, then each of their articles (which deletes that article's
// comments), then the user row itself. The order matters; comments must never
// outlive their article or author.
func (r *Repository) DeleteUser(id uint) error {
	if err := r.db.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return translate(err)
	}
	var articles []models.Article
	if err := r.db.Where("user_id = ?", id).Find(&articles).Error; err != nil {
		return translate(err)
	}
	for _, article := range articles {
		if err := r.DeleteArticle(article.ID); err != nil {
			return err
		}
	}
	return translate(r.db.Delete(&models.User{}, id).Error)
}
