// Package router maps page paths to views and decides, on every dispatch,
// whether a protected view is shown or redirected to the login page.
package router

import (
	"net/url"
	"strings"
)

type View string

const (
	ViewHome     View = "home"
	ViewBlogList View = "blog-list"
	ViewBlogPost View = "blog-post"
	ViewLogin    View = "login"
	ViewAdmin    View = "admin"
)

const (
	HomePath  = "/"
	BlogPath  = "/blog"
	LoginPath = "/login"
	AdminPath = "/admin"
)

// ParamSlug names the post slug segment of the blog detail route.
const ParamSlug = "slug"

// Authenticator is the part of a session the guard reads.
type Authenticator interface {
	IsAuthenticated() bool
}

// Route binds a path pattern to a view. Patterns use echo's syntax: a
// segment starting with ':' captures one non-empty path segment.
type Route struct {
	Pattern   string
	View      View
	Protected bool
}

type Params map[string]string

// Table is evaluated in order; the first matching route wins.
type Table []Route

// DefaultTable is the blog's route table.
func DefaultTable() Table {
	return Table{
		{Pattern: HomePath, View: ViewHome},
		{Pattern: BlogPath, View: ViewBlogList},
		{Pattern: BlogPath + "/:" + ParamSlug, View: ViewBlogPost},
		{Pattern: LoginPath, View: ViewLogin},
		{Pattern: AdminPath, View: ViewAdmin, Protected: true},
	}
}

// Decision is the outcome of dispatching one path.
type Decision struct {
	Route  Route
	View   View
	Params Params
	// Redirect is set when the view must not be shown. Replace asks the
	// caller to overwrite the current history entry rather than add one.
	Redirect string
	Replace  bool
	NotFound bool
}

// Match returns the first route whose pattern matches path. path is in
// escaped form, so an encoded slash stays inside its segment; segments are
// unescaped before they are compared or captured.
func (t Table) Match(path string) (Route, Params, bool) {
	segments, ok := unescape(split(path))
	if !ok {
		return Route{}, nil, false
	}
	for _, r := range t {
		if params, ok := match(split(r.Pattern), segments); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// Resolve matches path and applies the guard. It keeps no state between
// calls, so a logout is seen by the very next Resolve.
func (t Table) Resolve(path string, a Authenticator) Decision {
	r, params, ok := t.Match(path)
	if !ok {
		return Decision{NotFound: true}
	}
	d := Guard(r, a)
	d.Params = params
	return d
}

// Guard lets an authenticated session through to a protected route and sends
// everyone else to the login page, replacing the history entry so Back does
// not lead to the protected view again.
func Guard(r Route, a Authenticator) Decision {
	if r.Protected && !a.IsAuthenticated() {
		return Decision{Route: r, Redirect: LoginPath, Replace: true}
	}
	return Decision{Route: r, View: r.View}
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func unescape(segments []string) ([]string, bool) {
	out := make([]string, len(segments))
	for i, s := range segments {
		u, err := url.PathUnescape(s)
		if err != nil {
			return nil, false
		}
		out[i] = u
	}
	return out, true
}

func match(pattern, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := Params{}
	for i, p := range pattern {
		s := segments[i]
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if s == "" {
				return nil, false
			}
			params[name] = s
			continue
		}
		if p != s {
			return nil, false
		}
	}
	return params, true
}
