package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layout struct {
	Site     struct{ Title, Description, Footer string }
	LoggedIn bool
	CSRF     string
}

func TestTemplateRegistry_ParsesEveryPage(t *testing.T) {
	r, err := NewTemplateRegistry()
	require.NoError(t, err)
	for _, page := range Pages {
		assert.Contains(t, r.templates, page)
	}
}

func TestTemplateRegistry_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRegistry()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "missing.html", nil, nil)
	assert.EqualError(t, err, "template not found: missing.html")
}

func TestTemplateRegistry_PageTitleOverridesDefault(t *testing.T) {
	r, err := NewTemplateRegistry()
	require.NoError(t, err)

	data := layout{}
	data.Site.Title = "Site"

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "post-not-found.html", data, nil))
	assert.Contains(t, buf.String(), "<title>Post Not Found · Site</title>")
	assert.Contains(t, buf.String(), "Log In")
}

func TestStatic(t *testing.T) {
	data, err := fs.ReadFile(Static(), "app.css")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
