// Package cli implements the interactive task tracker client: a REPL over
// the REST API with a locally persisted session.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
	"github.com/dmitrijs2005/tasktracker/internal/client/state"
	"github.com/dmitrijs2005/tasktracker/internal/client/storage"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	api      *api.Client
	store    *state.Store
	sessions *storage.SessionStore
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	a := &App{
		config:   c,
		api:      api.NewClient(c.ServerBaseURL, c.RequestTimeout),
		store:    state.NewStore(),
		sessions: storage.NewSessionStore(db),
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	a.restoreSession(ctx)

	return a, nil
}

// restoreSession rehydrates the store from the local database so a previous
// login survives restarts. The token may have expired; protected calls will
// surface that when they fail.
func (a *App) restoreSession(ctx context.Context) {
	sess, err := a.sessions.Load(ctx)
	if err != nil || sess == nil {
		return
	}

	a.api.SetToken(sess.Token)

	var profile api.Profile
	if len(sess.Profile) > 0 {
		if err := json.Unmarshal(sess.Profile, &profile); err == nil {
			a.store.Apply(state.LoggedIn{Profile: &profile})
			return
		}
	}
	a.store.Apply(state.LoggedIn{})
}

// persistSession writes the current token and profile to the local database.
func (a *App) persistSession(ctx context.Context, profile *api.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return a.sessions.Save(ctx, &storage.Session{Token: a.api.Token(), Profile: data})
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Authenticated
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
