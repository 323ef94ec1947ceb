package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/ublog-dev/ublog/internal/models"
)

// TagCloud lists every tag used on public articles with its usage count,
// most used first.
func (r *Repository) TagCloud() ([]models.TagUsage, error) {
	var tags []models.TagUsage
	err := r.db.Model(&models.ArticleTag{}).
		Select("article_tags.tag_id, tags.name, count(article_tags.tag_id) as count").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Joins("JOIN articles ON articles.id = article_tags.article_id").
		Where("articles.public = ?", true).
		Group("article_tags.tag_id, tags.name").
		Order("count DESC").
		Scan(&tags).Error
	if err != nil {
		return nil, translate(err)
	}
	return tags, nil
}

func (r *Repository) TagByName(name string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.Where("name = ?", name).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// TagsByArticle returns the names of an article's tags.
func (r *Repository) TagsByArticle(articleID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&models.ArticleTag{}).
		Select("tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id = ?", articleID).
		Order("tags.name").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, translate(err)
	}
	return names, nil
}

// ClearArticleTags removes every tag link from an article.
func (r *Repository) ClearArticleTags(articleID uint) error {
	return translate(r.db.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error)
}

// SaveTags links the given tag names to an article, creating tags that do
// not exist yet. Names are trimmed; empty ones are ignored and names longer
// than models.MaxTagLength are skipped and reported in the returned
// notification instead of failing the save.
func (r *Repository) SaveTags(articleID uint, names []string) (string, error) {
	var notification strings.Builder
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) > models.MaxTagLength {
			fmt.Fprintf(&notification, "tag '%s' has been skipped because it was too long", name)
			continue
		}
		tag := models.Tag{Name: name}
		err := r.db.Where("name = ?", name).FirstOrCreate(&tag).Error
		if err != nil {
			return notification.String(), translate(err)
		}
		link := models.ArticleTag{TagID: tag.ID, ArticleID: articleID}
		err = r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
		if err != nil {
			return notification.String(), translate(err)
		}
	}
	return notification.String(), nil
}
