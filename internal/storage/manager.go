// Package storage opens the local SQLite database, applies the embedded
// goose migrations and vends repositories bound to a DBTX.
package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/items"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/settings"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Settings(db dbx.DBTX) settings.Repository
}
