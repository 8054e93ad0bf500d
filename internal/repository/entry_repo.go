package repository

import (
	"CryptoVault/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"

	myErrors "CryptoVault/internal/errors"
)

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{
		db: db,
	}
}

func (r *EntryRepository) Create(ctx context.Context, e domain.VaultEntry) error {
	query := `INSERT INTO vault_entries
		(entry_id, owner_id, name, algorithm, mode, padding, key_hex, iv_hex, segment_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		e.EntryID, e.OwnerID, e.Name, e.Algorithm, e.Mode, e.Padding,
		e.KeyHex, e.IvHex, e.SegmentSize, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating vault entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) Get(ctx context.Context, entryID string) (domain.VaultEntry, error) {
	query := `SELECT entry_id, owner_id, name, algorithm, mode, padding, key_hex, iv_hex, segment_size, created_at
		FROM vault_entries WHERE entry_id = $1`

	var e domain.VaultEntry

	row := r.db.QueryRowContext(ctx, query, entryID)
	err := row.Scan(&e.EntryID, &e.OwnerID, &e.Name, &e.Algorithm, &e.Mode,
		&e.Padding, &e.KeyHex, &e.IvHex, &e.SegmentSize, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VaultEntry{}, myErrors.ErrEntryNotFound
	}
	if err != nil {
		return domain.VaultEntry{}, fmt.Errorf("error getting vault entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.VaultEntry, error) {
	query := `SELECT entry_id, owner_id, name, algorithm, mode, padding, key_hex, iv_hex, segment_size, created_at
		FROM vault_entries WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing vault entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.VaultEntry
	for rows.Next() {
		var e domain.VaultEntry
		if err := rows.Scan(&e.EntryID, &e.OwnerID, &e.Name, &e.Algorithm, &e.Mode,
			&e.Padding, &e.KeyHex, &e.IvHex, &e.SegmentSize, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vault entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vault entries: %w", err)
	}
	return entries, nil
}

func (r *EntryRepository) Delete(ctx context.Context, entryID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vault_entries WHERE entry_id = $1", entryID)
	if err != nil {
		return fmt.Errorf("error deleting vault entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting vault entry: %w", err)
	}
	if affected == 0 {
		return myErrors.ErrEntryNotFound
	}
	return nil
}
