package store

import (
	"context"
	"demoblog/domain"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, dsn string, posts []domain.Post) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), dsn, posts)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite(t *testing.T) {
	posts, err := DefaultPosts()
	require.NoError(t, err)

	storeContract(t, openTestSQLite(t, MemoryDSN, posts))
}

func TestSQLite_ReopenFileKeepsSchema(t *testing.T) {
	posts, err := DefaultPosts()
	require.NoError(t, err)
	dsn := filepath.Join(t.TempDir(), "posts.db")

	first, err := OpenSQLite(context.Background(), dsn, posts)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	posts[0].Title = "Retitled"
	second := openTestSQLite(t, dsn, posts)

	got, err := second.BySlug(context.Background(), posts[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, "Retitled", got.Title)

	all, err := second.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(posts))
}

func TestSQLite_ReopenDropsRemovedPosts(t *testing.T) {
	posts, err := DefaultPosts()
	require.NoError(t, err)
	dsn := filepath.Join(t.TempDir(), "posts.db")

	first, err := OpenSQLite(context.Background(), dsn, posts)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	removed := posts[len(posts)-1]
	kept := posts[:len(posts)-1]
	second := openTestSQLite(t, dsn, kept)

	all, err := second.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, kept, all)

	_, err = second.BySlug(context.Background(), removed.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenSQLite_RejectsInvalidPosts(t *testing.T) {
	_, err := OpenSQLite(context.Background(), MemoryDSN, []domain.Post{{ID: 1, Slug: "bad slug", Title: "A"}})
	assert.Error(t, err)
}
