package handler

import (
	"demoblog/domain"
	"demoblog/session"
	"demoblog/store"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerUGC = bluemonday.UGCPolicy()

type PostDTO struct {
	ID      int
	Slug    string
	Title   string
	Excerpt string
	Author  string
	Date    string
	Content template.HTML
}

func summaryDTO(p domain.Post) PostDTO {
	return PostDTO{
		ID:      p.ID,
		Slug:    p.Slug,
		Title:   p.Title,
		Excerpt: p.Excerpt,
		Author:  p.Author,
		Date:    p.Date,
	}
}

func (h *Handler) blogList(c echo.Context, s session.State) error {
	posts, err := h.Posts.All(c.Request().Context())
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}
	dtos := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, summaryDTO(p))
	}

	return c.Render(http.StatusOK, "blog-list.html", struct {
		LayoutDTO
		Posts []PostDTO
	}{
		LayoutDTO: h.layout(c, s),
		Posts:     dtos,
	})
}

// blogPost renders one post. An unknown slug is an ordinary page, not an
// error.
func (h *Handler) blogPost(c echo.Context, s session.State, slug string) error {
	p, err := h.Posts.BySlug(c.Request().Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		return c.Render(http.StatusNotFound, "post-not-found.html", h.layout(c, s))
	}
	if err != nil {
		return fmt.Errorf("loading post %q: %w", slug, err)
	}

	dto := summaryDTO(p)
	dto.Content = safeMd(p.Content)
	return c.Render(http.StatusOK, "blog-post.html", struct {
		LayoutDTO
		Post PostDTO
	}{
		LayoutDTO: h.layout(c, s),
		Post:      dto,
	})
}

func mdToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

func safeMd(content string) template.HTML {
	return template.HTML(sanitizerUGC.SanitizeBytes(mdToHTML(content)))
}
