package sqlite

import (
	"database/sql"

	"github.com/shan145/event-management-client/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) store.Tx {
	return &txStore{tx: tx}
}

func (t *txStore) Groups() store.Groups     { return &groupsRepo{db: t.tx} }
func (t *txStore) Events() store.Events     { return &eventsRepo{db: t.tx} }
func (t *txStore) Messages() store.Messages { return &messagesRepo{db: t.tx} }
func (t *txStore) Prefs() store.Prefs       { return &prefsRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }
