package repository

import (
	"gorm.io/gorm"

	"github.com/ublog-dev/ublog/internal/models"
)

// listings is the base query for article overviews: articles joined with
// their author name and comment count, newest first.
func (r *Repository) listings() *gorm.DB {
	return r.db.Model(&models.Article{}).
		Select("articles.*, users.author, count(comments.id) as comment_count").
		Joins("JOIN users ON users.id = articles.user_id").
		Joins("LEFT JOIN comments ON comments.article_id = articles.id").
		Group("articles.id, users.author").
		Order("articles.id DESC")
}

// monthExpr and yearExpr extract date parts in the dialect at hand; the
// application runs on postgres, the repository tests on sqlite.
func (r *Repository) monthExpr() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%m', articles.date) AS INTEGER)"
	}
	return "EXTRACT(MONTH FROM articles.date)"
}

func (r *Repository) yearExpr() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', articles.date) AS INTEGER)"
	}
	return "EXTRACT(YEAR FROM articles.date)"
}

func (r *Repository) ArticleByID(id uint) (*models.Article, error) {
	var a models.Article
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// LastN returns the newest count articles with the given publication state.
func (r *Repository) LastN(count int, public bool) ([]models.ArticleListing, error) {
	var articles []models.ArticleListing
	err := r.listings().
		Where("articles.public = ?", public).
		Limit(count).
		Scan(&articles).Error
	if err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// ArticlesByMonth returns the public articles of one month.
func (r *Repository) ArticlesByMonth(month, year int) ([]models.ArticleListing, error) {
	var articles []models.ArticleListing
	err := r.listings().
		Where("articles.public = ?", true).
		Where(r.monthExpr()+" = ? AND "+r.yearExpr()+" = ?", month, year).
		Scan(&articles).Error
	if err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// ArticlesByYear returns the public articles of one year.
func (r *Repository) ArticlesByYear(year int) ([]models.ArticleListing, error) {
	var articles []models.ArticleListing
	err := r.listings().
		Where("articles.public = ?", true).
		Where(r.yearExpr()+" = ?", year).
		Scan(&articles).Error
	if err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// ArticlesByTag returns the public articles carrying the named tag.
func (r *Repository) ArticlesByTag(name string) ([]models.ArticleListing, error) {
	var articles []models.ArticleListing
	err := r.listings().
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("articles.public = ? AND tags.name = ?", true, name).
		Scan(&articles).Error
	if err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// ArticlesByUser returns the public articles written by one user.
func (r *Repository) ArticlesByUser(userID uint) ([]models.ArticleListing, error) {
	var articles []models.ArticleListing
	err := r.listings().
		Where("articles.public = ? AND articles.user_id = ?", true, userID).
		Scan(&articles).Error
	if err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// ActiveMonths lists every month that has public articles, with counts.
func (r *Repository) ActiveMonths() ([]models.ArticleMonth, error) {
	var months []models.ArticleMonth
	err := r.db.Model(&models.Article{}).
		Select(r.monthExpr()+" as month, "+r.yearExpr()+" as year, count(articles.id) as count").
		Where("articles.public = ?", true).
		Group("month, year").
		Order("year DESC, month DESC").
		Scan(&months).Error
	if err != nil {
		return nil, translate(err)
	}
	return months, nil
}

func (r *Repository) CreateArticle(a *models.Article) error {
	return translate(r.db.Create(a).Error)
}

func (r *Repository) SaveArticle(a *models.Article) error {
	return translate(r.db.Save(a).Error)
}

// DeleteArticle removes an article, its comments first so they never outlive
// it, and drops its tag links.
func (r *Repository) DeleteArticle(id uint) error {
	if err := r.db.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return translate(err)
	}
	if err := r.ClearArticleTags(id); err != nil {
		return err
	}
	return translate(r.db.Delete(&models.Article{}, id).Error)
}
