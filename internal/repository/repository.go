package repository

import (
	"CryptoVault/internal/domain"
	"context"
	"database/sql"
)

type UserRepo interface {
	Create(ctx context.Context, u domain.User) error
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type EntryRepo interface {
	Create(ctx context.Context, e domain.VaultEntry) error
	Get(ctx context.Context, entryID string) (domain.VaultEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.VaultEntry, error)
	Delete(ctx context.Context, entryID string) error
}

type ObjectRepo interface {
	Store(ctx context.Context, o domain.SealedObject) error
	Get(ctx context.Context, objectID string) (domain.SealedObject, error)
	ListByEntry(ctx context.Context, entryID string) ([]domain.SealedObject, error)
	Delete(ctx context.Context, objectID string) error
}

type Repository struct {
	UserRepo
	EntryRepo
	ObjectRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:   NewUserRepository(db),
		EntryRepo:  NewEntryRepository(db),
		ObjectRepo: NewObjectRepository(db),
	}
}
