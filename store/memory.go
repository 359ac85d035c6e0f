package store

import (
	"context"
	"demoblog/domain"
	"slices"
)

// Memory serves posts from a slice.
type Memory struct {
	posts []domain.Post
}

func NewMemory(posts []domain.Post) (*Memory, error) {
	if err := Validate(posts); err != nil {
		return nil, err
	}
	return &Memory{posts: slices.Clone(posts)}, nil
}

func (m *Memory) All(_ context.Context) ([]domain.Post, error) {
	return slices.Clone(m.posts), nil
}

func (m *Memory) BySlug(_ context.Context, slug string) (domain.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Post{}, ErrNotFound
}
