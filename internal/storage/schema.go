package storage

import (
	"context"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the resource reference table when it is missing.
// Hosts that manage schema with the embedded SQL migrations can skip it.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return ErrDatabaseRequired
	}
	_, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	return err
}
