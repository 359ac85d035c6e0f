package store

import (
	"context"
	"database/sql"
	"demoblog/domain"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MemoryDSN keeps the database in process memory. The pool is pinned to a
// single connection so every query sees the same database.
const MemoryDSN = ":memory:"

// SQLite serves posts from an SQLite database seeded at open time.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens dsn, runs the schema migrations and upserts posts.
func OpenSQLite(ctx context.Context, dsn string, posts []domain.Post) (*SQLite, error) {
	if err := Validate(posts); err != nil {
		return nil, err
	}
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.seed(ctx, posts); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func migrateUp(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *SQLite) seed(ctx context.Context, posts []domain.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error in begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteStale(ctx, tx, posts); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (id, slug, title, excerpt, author, date, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			excerpt = excluded.excerpt,
			author = excluded.author,
			date = excluded.date,
			content = excluded.content`)
	if err != nil {
		return fmt.Errorf("error preparing statement in table posts: %w", err)
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Slug, p.Title, p.Excerpt, p.Author, p.Date, p.Content); err != nil {
			return fmt.Errorf("seeding post %q: %w", p.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error in commit transaction: %w", err)
	}
	return nil
}

// deleteStale drops rows left over from a dataset that no longer has them.
func deleteStale(ctx context.Context, tx *sql.Tx, posts []domain.Post) error {
	query := "DELETE FROM posts"
	args := make([]any, 0, len(posts))
	if len(posts) > 0 {
		query += " WHERE id NOT IN (?" + strings.Repeat(", ?", len(posts)-1) + ")"
		for _, p := range posts {
			args = append(args, p.ID)
		}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting stale posts: %w", err)
	}
	return nil
}

func (s *SQLite) All(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, slug, title, excerpt, author, date, content FROM posts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Author, &p.Date, &p.Content); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *SQLite) BySlug(ctx context.Context, slug string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, slug, title, excerpt, author, date, content FROM posts WHERE slug = ?", slug)

	var p domain.Post
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Author, &p.Date, &p.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("scanning post %q: %w", slug, err)
	}
	return p, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
