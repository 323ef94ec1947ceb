package models

// User is an account that can author articles and comments. Name holds the
// login email and Author the public display name; both are unique. Accounts
// created on someone's first comment start out inactive and without a
// password until they sign up properly.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Author   string `gorm:"size:30;uniqueIndex;not null" json:"author"`
	Password string `gorm:"size:64" json:"-"`
	Salt     string `gorm:"size:12" json:"-"`
	Admin    bool   `gorm:"not null;default:false" json:"admin"`
	Active   bool   `gorm:"not null;default:false" json:"active"`
}
