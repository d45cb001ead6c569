package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/balekai/taskboard/internal/domain"
)

// AccountLinker migrates a local account's primary key to its federated
// subject id in one transaction:
//
//  1. repoint boards.owner_id from the old id to the new id
//  2. repoint cards.assigned_user_id the same way
//  3. UPDATE users SET id = new WHERE id = old
//
// Step 3 is the commit gate: zero rows affected means a concurrent link
// already migrated the old id, so the whole transaction rolls back and the
// caller gets "already_linked". Nothing here deletes a row; the user's
// email, name and password hash survive the migration untouched.
type AccountLinker struct {
	db *sql.DB
}

func NewAccountLinker(db *sql.DB) *AccountLinker {
	return &AccountLinker{db: db}
}

func (l *AccountLinker) Link(ctx context.Context, oldID, newID string) error {
	oldID = strings.TrimSpace(oldID)
	newID = strings.TrimSpace(newID)
	if oldID == "" {
		return domain.ErrMissingField("old_id")
	}
	if newID == "" {
		return domain.ErrMissingField("new_id")
	}
	if oldID == newID {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Warn().Err(err).Msg("account link rollback failed")
		}
	}()

	const repointBoards = `
UPDATE boards
SET owner_id = $2
WHERE owner_id = $1;
`
	if _, err := tx.ExecContext(ctx, repointBoards, oldID, newID); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	const repointCards = `
UPDATE cards
SET assigned_user_id = $2
WHERE assigned_user_id = $1;
`
	if _, err := tx.ExecContext(ctx, repointCards, oldID, newID); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	const migrateUser = `
UPDATE users
SET id = $2
WHERE id = $1;
`
	res, err := tx.ExecContext(ctx, migrateUser, oldID, newID)
	if err != nil {
		if isDuplicate(err) {
			// newID already present: another request created or linked it.
			return domain.ErrAlreadyLinked()
		}
		return domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n == 0 {
		return domain.ErrAlreadyLinked()
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
