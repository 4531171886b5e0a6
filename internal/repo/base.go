package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared foundation the domain repositories embed. It owns the
// GORM connection and binds request contexts to queries.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection scoped to ctx; a nil ctx yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
