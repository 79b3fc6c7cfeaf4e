package collections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopsync/internal/dbx"
	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, kind models.CollectionKind) ([]models.CollectionItem, error) {
	query :=
		`SELECT items FROM collections
		 WHERE user_id = $1 AND kind = $2
		 `

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID, string(kind)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.CollectionItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	items := make([]models.CollectionItem, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Put(ctx context.Context, userID string, kind models.CollectionKind, items []models.CollectionItem) error {
	if items == nil {
		items = []models.CollectionItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	query :=
		`INSERT INTO collections (user_id, kind, items) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, kind) DO UPDATE SET items = excluded.items
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, string(kind), raw); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
