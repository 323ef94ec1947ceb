// Package repository wraps all database access behind a Repository value.
// Handlers never touch gorm directly; gorm's errors are translated into the
// package's sentinel errors at this boundary.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the given key or unique
	// field.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique
	// constraint.
	ErrDuplicate = errors.New("record already exists")
)

// Repository bundles every query the application issues against its
// relational store.
type Repository struct {
	db *gorm.DB
}

// New returns a Repository over the given connection.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// translate maps gorm errors onto the package's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate key value"):
		return ErrDuplicate
	default:
		return err
	}
}
