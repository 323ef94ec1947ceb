package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ublog-dev/ublog/db"
	"github.com/ublog-dev/ublog/internal/models"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(conn))
	return New(conn)
}

func mustCreateUser(t *testing.T, r *Repository, name, author string, admin, active bool) *models.User {
	t.Helper()
	u := &models.User{Name: name, Author: author, Admin: admin, Active: active}
	require.NoError(t, r.CreateUser(u))
	return u
}

func mustCreateArticle(t *testing.T, r *Repository, userID uint, title string, public bool, date time.Time) *models.Article {
	t.Helper()
	a := &models.Article{
		Title:       title,
		Content:     "content of " + title,
		UserID:      userID,
		Date:        date,
		LastChange:  date,
		Public:      public,
		Commentable: true,
	}
	require.NoError(t, r.CreateArticle(a))
	return a
}

func mustCreateComment(t *testing.T, r *Repository, userID, articleID uint, content string) *models.Comment {
	t.Helper()
	c := &models.Comment{UserID: userID, ArticleID: articleID, Content: content, Date: time.Now().UTC()}
	require.NoError(t, r.CreateComment(c))
	return c
}

func count(t *testing.T, r *Repository, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.db.Model(model).Count(&n).Error)
	return n
}
