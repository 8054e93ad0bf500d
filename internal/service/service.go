package service

import (
	"CryptoVault/algorithm/symmetric"
	"CryptoVault/internal/auth"
	"CryptoVault/internal/domain"
	"CryptoVault/internal/infrastructure/kafka"
	natsjs "CryptoVault/internal/infrastructure/nats"
	"CryptoVault/internal/repository"
	"context"
)

type Auth interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type Vault interface {
	CreateEntry(ctx context.Context, entry domain.VaultEntry) (string, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (domain.VaultEntry, error)
	ListEntries(ctx context.Context, ownerID string) ([]domain.VaultEntry, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error

	Seal(ctx context.Context, ownerID, entryID, label string, payload []byte) (string, error)
	Open(ctx context.Context, ownerID, objectID string) ([]byte, error)
	ListObjects(ctx context.Context, ownerID, entryID string) ([]domain.SealedObject, error)
	DeleteObject(ctx context.Context, ownerID, objectID string) error
	NewStream(ctx context.Context, ownerID, entryID string, encrypting bool) (*symmetric.Feeder, error)

	ReceiveNotification(ctx context.Context, userID string) (domain.Notification, error)
	AckNotification(messageID string) error
}

type Service struct {
	Auth
	Vault
}

func NewService(
	repositories *repository.Repository,
	authenticator *auth.Authenticator,
	audit *kafka.Producer,
	jsClient *natsjs.JSClient,
) *Service {
	return &Service{
		Auth:  NewAuthService(repositories.UserRepo, authenticator),
		Vault: NewVaultService(repositories.EntryRepo, repositories.ObjectRepo, audit, jsClient),
	}
}
