package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/dmitrijs2005/constructhub/internal/dbx"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite keeps the pair in the metadata table of db. The table must
// exist (see client.InitDatabase).
func NewSQLite(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Load(ctx context.Context) (models.Tokens, error) {
	m, err := metadata.NewSQLiteRepository(r.db).Lookup(ctx, common.AccessTokenKey, common.RefreshTokenKey)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("load tokens: %w", err)
	}
	return models.Tokens{Access: m[common.AccessTokenKey], Refresh: m[common.RefreshTokenKey]}, nil
}

// Save replaces the stored pair. Empty halves are removed rather than
// written, so a pair without a refresh token leaves none behind.
func (r *sqliteRepository) Save(ctx context.Context, t models.Tokens) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey); err != nil {
			return err
		}
		values := map[string]string{}
		if t.Access != "" {
			values[common.AccessTokenKey] = t.Access
		}
		if t.Refresh != "" {
			values[common.RefreshTokenKey] = t.Refresh
		}
		return repo.Put(ctx, values)
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (r *sqliteRepository) SaveAccess(ctx context.Context, access string) error {
	return metadata.NewSQLiteRepository(r.db).Put(ctx, map[string]string{common.AccessTokenKey: access})
}

func (r *sqliteRepository) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(r.db).Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey)
}

// Close is a no-op: the database handle belongs to the caller.
func (r *sqliteRepository) Close() error { return nil }
