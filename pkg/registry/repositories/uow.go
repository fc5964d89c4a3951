package repositories

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork scopes repository work to a single database transaction. The
// transaction commits when fn returns nil and rolls back on any error or
// panic, so no partial write can leak out of a cancelled request.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repo ArtifactRepository) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithinTx(ctx context.Context, fn func(repo ArtifactRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewArtifactRepository(tx))
	})
}
