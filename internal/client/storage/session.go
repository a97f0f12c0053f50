package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
)

const (
	keyToken   = "token"
	keyProfile = "profile"
)

// Session is the locally persisted login state: the bearer token and the
// last profile payload received from the server.
type Session struct {
	Token   string
	Profile []byte
}

// SessionStore persists the session in the metadata table. Token and profile
// are written in one transaction so the stored state is never half-updated.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(session.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyProfile, session.Profile)
	})
}

// Load returns the stored session, or nil when no one is logged in.
func (s *SessionStore) Load(ctx context.Context) (*Session, error) {
	repo := NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}

	profile, err := repo.Get(ctx, keyProfile)
	if err != nil {
		return nil, err
	}

	return &Session{Token: string(token), Profile: profile}, nil
}

// Clear removes the stored session on logout.
func (s *SessionStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Clear(ctx)
	})
}
