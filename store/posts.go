package store

import (
	"demoblog/domain"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed posts/*.md
var builtin embed.FS

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DefaultPosts returns the posts compiled into the binary.
func DefaultPosts() ([]domain.Post, error) {
	sub, err := fs.Sub(builtin, "posts")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load parses every *.md file at the root of fsys, validates the set and
// returns it ordered by ID.
func Load(fsys fs.FS) ([]domain.Post, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading post %s: %w", name, err)
		}
		p, err := ParsePost(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing post %s: %w", path.Base(name), err)
		}
		posts = append(posts, p)
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	if err := Validate(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ParsePost parses a markdown document with YAML frontmatter.
func ParsePost(content string) (domain.Post, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return domain.Post{}, err
	}
	var p domain.Post
	if err := yaml.Unmarshal([]byte(fm), &p); err != nil {
		return domain.Post{}, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	p.Content = body
	return p, nil
}

// Validate checks the invariants the router relies on: IDs and slugs are
// unique and every slug is URL-safe.
func Validate(posts []domain.Post) error {
	ids := make(map[int]struct{}, len(posts))
	slugs := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if !slugRegexp.MatchString(p.Slug) {
			return fmt.Errorf("post %d: invalid slug %q", p.ID, p.Slug)
		}
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("post %q: empty title", p.Slug)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("duplicate post id %d", p.ID)
		}
		if _, dup := slugs[p.Slug]; dup {
			return fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		ids[p.ID] = struct{}{}
		slugs[p.Slug] = struct{}{}
	}
	return nil
}

func splitFrontmatter(content string) (string, string, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if !strings.HasPrefix(content, "---\n") {
		return "", "", fmt.Errorf("missing frontmatter delimiter '---'")
	}
	rest := content[len("---\n"):]

	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", fmt.Errorf("no closing frontmatter delimiter '---' found")
	}
	return rest[:idx], strings.TrimSpace(rest[idx+len("\n---"):]), nil
}
