package service

import (
	"CryptoVault/algorithm/rc5"
	"CryptoVault/algorithm/rc6"
	"CryptoVault/algorithm/symmetric"
	"CryptoVault/internal/domain"
	myErrors "CryptoVault/internal/errors"
	"CryptoVault/internal/infrastructure/kafka"
	"CryptoVault/internal/repository"
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditPublisher and Notifier are the slices of the kafka producer and the
// JetStream client the vault needs.
type AuditPublisher interface {
	SendAuditEvent(ctx context.Context, msg kafka.AuditMessage) error
}

type Notifier interface {
	EnsureNotificationsConsumer(userID string) error
	PublishNotification(ctx context.Context, message domain.Notification) error
	FetchOneNotification(ctx context.Context, userID string) (domain.Notification, error)
	AckEvent(messageID string) error
}

type VaultService struct {
	entries repository.EntryRepo
	objects repository.ObjectRepo
	audit   AuditPublisher
	js      Notifier
}

func NewVaultService(
	entryRepo repository.EntryRepo,
	objectRepo repository.ObjectRepo,
	audit AuditPublisher,
	jsClient Notifier,
) *VaultService {
	return &VaultService{
		entries: entryRepo,
		objects: objectRepo,
		audit:   audit,
		js:      jsClient,
	}
}

func (s *VaultService) CreateEntry(ctx context.Context, entry domain.VaultEntry) (string, error) {
	entry.EntryID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	// Reject unusable configurations before they hit storage.
	if _, err := contextForEntry(entry); err != nil {
		return "", fmt.Errorf("invalid cipher configuration: %w", err)
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("error creating entry: %w", err)
	}

	s.publishAudit(ctx, domain.AuditEvent{
		UserID:  entry.OwnerID,
		EntryID: entry.EntryID,
		Action:  "entry.create",
		Detail:  entry.Name,
	})

	return entry.EntryID, nil
}

func (s *VaultService) GetEntry(ctx context.Context, ownerID, entryID string) (domain.VaultEntry, error) {
	entry, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return domain.VaultEntry{}, err
	}
	if entry.OwnerID != ownerID {
		return domain.VaultEntry{}, myErrors.ErrUnauthorized
	}
	return entry, nil
}

func (s *VaultService) ListEntries(ctx context.Context, ownerID string) ([]domain.VaultEntry, error) {
	return s.entries.ListByOwner(ctx, ownerID)
}

func (s *VaultService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	if _, err := s.GetEntry(ctx, ownerID, entryID); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, entryID); err != nil {
		return err
	}

	s.publishAudit(ctx, domain.AuditEvent{
		UserID:  ownerID,
		EntryID: entryID,
		Action:  "entry.delete",
	})
	return nil
}

// Seal encrypts payload with the entry's cipher configuration and stores the
// resulting object.
func (s *VaultService) Seal(ctx context.Context, ownerID, entryID, label string, payload []byte) (string, error) {
	entry, err := s.GetEntry(ctx, ownerID, entryID)
	if err != nil {
		return "", err
	}

	cipherCtx, err := contextForEntry(entry)
	if err != nil {
		return "", fmt.Errorf("invalid cipher configuration: %w", err)
	}

	sealed, err := cipherCtx.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("error sealing payload: %w", err)
	}

	object := domain.SealedObject{
		ObjectID:  uuid.New().String(),
		EntryID:   entryID,
		OwnerID:   ownerID,
		Label:     label,
		Data:      sealed,
		Size:      len(sealed),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.objects.Store(ctx, object); err != nil {
		return "", fmt.Errorf("error storing sealed object: %w", err)
	}

	s.publishAudit(ctx, domain.AuditEvent{
		UserID:   ownerID,
		EntryID:  entryID,
		ObjectID: object.ObjectID,
		Action:   "object.seal",
		Detail:   label,
	})
	s.publishNotification(ctx, domain.Notification{
		MessageID: uuid.New().String(),
		UserID:    ownerID,
		ObjectID:  object.ObjectID,
		EntryID:   entryID,
		Label:     label,
		Action:    "sealed",
	})

	return object.ObjectID, nil
}

// Open loads a sealed object and decrypts it with its entry's configuration.
func (s *VaultService) Open(ctx context.Context, ownerID, objectID string) ([]byte, error) {
	object, err := s.objects.Get(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if object.OwnerID != ownerID {
		return nil, myErrors.ErrUnauthorized
	}

	entry, err := s.GetEntry(ctx, ownerID, object.EntryID)
	if err != nil {
		return nil, err
	}

	cipherCtx, err := contextForEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("invalid cipher configuration: %w", err)
	}

	payload, err := cipherCtx.Decrypt(object.Data)
	if err != nil {
		return nil, fmt.Errorf("error opening object: %w", err)
	}

	s.publishAudit(ctx, domain.AuditEvent{
		UserID:   ownerID,
		EntryID:  object.EntryID,
		ObjectID: objectID,
		Action:   "object.open",
		Detail:   object.Label,
	})

	return payload, nil
}

func (s *VaultService) ListObjects(ctx context.Context, ownerID, entryID string) ([]domain.SealedObject, error) {
	if _, err := s.GetEntry(ctx, ownerID, entryID); err != nil {
		return nil, err
	}
	return s.objects.ListByEntry(ctx, entryID)
}

func (s *VaultService) DeleteObject(ctx context.Context, ownerID, objectID string) error {
	object, err := s.objects.Get(ctx, objectID)
	if err != nil {
		return err
	}
	if object.OwnerID != ownerID {
		return myErrors.ErrUnauthorized
	}

	if err := s.objects.Delete(ctx, objectID); err != nil {
		return err
	}

	s.publishAudit(ctx, domain.AuditEvent{
		UserID:   ownerID,
		EntryID:  object.EntryID,
		ObjectID: objectID,
		Action:   "object.delete",
		Detail:   object.Label,
	})
	s.publishNotification(ctx, domain.Notification{
		MessageID: uuid.New().String(),
		UserID:    ownerID,
		ObjectID:  objectID,
		EntryID:   object.EntryID,
		Label:     object.Label,
		Action:    "deleted",
	})
	return nil
}

// NewStream opens an incremental encrypter or decrypter over the entry's
// configuration, for transports that feed data chunk by chunk.
func (s *VaultService) NewStream(ctx context.Context, ownerID, entryID string, encrypting bool) (*symmetric.Feeder, error) {
	entry, err := s.GetEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, err
	}
	cipherCtx, err := contextForEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("invalid cipher configuration: %w", err)
	}
	if encrypting {
		return cipherCtx.NewEncrypter()
	}
	return cipherCtx.NewDecrypter()
}

func (s *VaultService) ReceiveNotification(ctx context.Context, userID string) (domain.Notification, error) {
	if err := s.js.EnsureNotificationsConsumer(userID); err != nil {
		return domain.Notification{}, err
	}
	return s.js.FetchOneNotification(ctx, userID)
}

func (s *VaultService) AckNotification(messageID string) error {
	return s.js.AckEvent(messageID)
}

// Audit and notification delivery stay best effort, a broker outage must not
// fail the vault operation itself.
func (s *VaultService) publishAudit(ctx context.Context, event domain.AuditEvent) {
	event.EventID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()

	msg := kafka.AuditMessage{
		EventID:   event.EventID,
		UserID:    event.UserID,
		EntryID:   event.EntryID,
		ObjectID:  event.ObjectID,
		Action:    event.Action,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt,
	}
	if err := s.audit.SendAuditEvent(ctx, msg); err != nil {
		slog.Error("audit publish failed", "action", event.Action, "error", err)
	}
}

func (s *VaultService) publishNotification(ctx context.Context, note domain.Notification) {
	if err := s.js.EnsureNotificationsConsumer(note.UserID); err != nil {
		slog.Error("notification consumer setup failed", "user", note.UserID, "error", err)
		return
	}
	if err := s.js.PublishNotification(ctx, note); err != nil {
		slog.Error("notification publish failed", "user", note.UserID, "error", err)
	}
}

// contextForEntry turns a stored configuration into a ready cipher context.
func contextForEntry(entry domain.VaultEntry) (*symmetric.CipherContext, error) {
	key, err := hex.DecodeString(entry.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("bad key hex: %w", err)
	}
	iv, err := hex.DecodeString(entry.IvHex)
	if err != nil {
		return nil, fmt.Errorf("bad iv hex: %w", err)
	}

	var cipher symmetric.BlockCipher
	switch strings.ToUpper(entry.Algorithm) {
	case "RC6":
		cipher, err = rc6.NewRC6(key)
	case "RC5":
		cipher, err = rc5.NewRC5(key)
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", entry.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	mode, err := symmetric.ParseCipherMode(entry.Mode)
	if err != nil {
		return nil, err
	}
	padding, err := symmetric.ParsePaddingOption(entry.Padding)
	if err != nil {
		return nil, err
	}

	segmentSize := entry.SegmentSize
	if segmentSize == 0 {
		segmentSize = symmetric.BlockSize
	}

	return symmetric.NewCipherContext(key, cipher, mode, padding, iv, segmentSize)
}
