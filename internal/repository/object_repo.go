package repository

import (
	"CryptoVault/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"

	myErrors "CryptoVault/internal/errors"
)

type ObjectRepository struct {
	db *sql.DB
}

func NewObjectRepository(db *sql.DB) *ObjectRepository {
	return &ObjectRepository{
		db: db,
	}
}

func (r *ObjectRepository) Store(ctx context.Context, o domain.SealedObject) error {
	query := `INSERT INTO sealed_objects
		(object_id, entry_id, owner_id, label, data, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		o.ObjectID, o.EntryID, o.OwnerID, o.Label, o.Data, o.Size, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("error storing sealed object: %w", err)
	}
	return nil
}

func (r *ObjectRepository) Get(ctx context.Context, objectID string) (domain.SealedObject, error) {
	query := `SELECT object_id, entry_id, owner_id, label, data, size, created_at
		FROM sealed_objects WHERE object_id = $1`

	var o domain.SealedObject

	row := r.db.QueryRowContext(ctx, query, objectID)
	err := row.Scan(&o.ObjectID, &o.EntryID, &o.OwnerID, &o.Label, &o.Data, &o.Size, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SealedObject{}, myErrors.ErrObjectNotFound
	}
	if err != nil {
		return domain.SealedObject{}, fmt.Errorf("error getting sealed object: %w", err)
	}
	return o, nil
}

func (r *ObjectRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.SealedObject, error) {
	query := `SELECT object_id, entry_id, owner_id, label, size, created_at
		FROM sealed_objects WHERE entry_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("error listing sealed objects: %w", err)
	}
	defer rows.Close()

	var objects []domain.SealedObject
	for rows.Next() {
		var o domain.SealedObject
		// data column skipped, listings carry metadata only
		if err := rows.Scan(&o.ObjectID, &o.EntryID, &o.OwnerID, &o.Label, &o.Size, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning sealed object: %w", err)
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sealed objects: %w", err)
	}
	return objects, nil
}

func (r *ObjectRepository) Delete(ctx context.Context, objectID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sealed_objects WHERE object_id = $1", objectID)
	if err != nil {
		return fmt.Errorf("error deleting sealed object: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting sealed object: %w", err)
	}
	if affected == 0 {
		return myErrors.ErrObjectNotFound
	}
	return nil
}
