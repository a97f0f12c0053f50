package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSessionStore(db)

	// Nothing stored yet.
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, sess)

	require.NoError(t, store.Save(ctx, &Session{
		Token:   "jwt-token",
		Profile: []byte(`{"email":"ada@example.com"}`),
	}))

	sess, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "jwt-token", sess.Token)
	require.Equal(t, []byte(`{"email":"ada@example.com"}`), sess.Profile)

	// A new login overwrites the old session.
	require.NoError(t, store.Save(ctx, &Session{Token: "jwt-token-2", Profile: []byte(`{}`)}))

	sess, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "jwt-token-2", sess.Token)

	require.NoError(t, store.Clear(ctx))

	sess, err = store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, sess)
}
