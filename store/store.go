// Package store holds the blog posts. Posts are read-only once loaded.
package store

import (
	"context"
	"demoblog/domain"
	"errors"
)

// ErrNotFound is returned by BySlug when no post has the requested slug.
var ErrNotFound = errors.New("post not found")

// Posts is the read side every page needs.
type Posts interface {
	// All returns every post in declaration order.
	All(ctx context.Context) ([]domain.Post, error)
	// BySlug returns the post with the given slug or ErrNotFound.
	BySlug(ctx context.Context, slug string) (domain.Post, error)
}
