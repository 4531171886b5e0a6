package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func TestBaseDB(t *testing.T) {
	db := openDB(t)
	base := NewBase(db)

	t.Run("context flows into the session", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "tagged")
		session := base.DB(ctx)
		require.NotNil(t, session)
		require.NotNil(t, session.Statement)
		require.Equal(t, ctx, session.Statement.Context)
	})

	t.Run("nil context returns the raw connection", func(t *testing.T) {
		require.Same(t, db, base.DB(nil))
	})
}
