package models

// MaxTagLength is the longest tag name that is accepted on article save;
// longer names are skipped with a notification instead of failing the save.
const MaxTagLength = 24

// Tag is a label attached to articles through the ArticleTag link table.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:25;uniqueIndex;not null" json:"name"`
}

// ArticleTag links a tag to an article, keyed by the pair.
type ArticleTag struct {
	TagID     uint `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	ArticleID uint `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
}

// TagUsage is one tag cloud entry: a tag and the number of public articles
// carrying it.
type TagUsage struct {
	TagID uint   `json:"tag_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AuthorListing is one entry of the author overview: an active admin with the
// number of public articles they wrote.
type AuthorListing struct {
	UserID uint   `json:"user_id"`
	Author string `json:"author"`
	Count  int    `json:"count"`
}
