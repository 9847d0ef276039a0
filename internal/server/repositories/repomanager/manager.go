// Package repomanager aggregates the per-entity repository constructors behind
// one interface so services can run any repository against either a pooled
// connection or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"communityhub/internal/dbx"
	"communityhub/internal/server/repositories/discussions"
	"communityhub/internal/server/repositories/refreshtokens"
	"communityhub/internal/server/repositories/resources"
	"communityhub/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Resources(db dbx.DBTX) resources.Repository
	Discussions(db dbx.DBTX) discussions.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
