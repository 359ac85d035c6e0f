package router

// maxRedirects stops a misconfigured table from redirecting forever.
const maxRedirects = 8

// History is a browser-style navigation history driven by a Table. Every
// call re-resolves the current path against the session, the way a browser
// re-renders on each navigation.
type History struct {
	table   Table
	auth    Authenticator
	entries []string
	cursor  int
}

// NewHistory starts a history at start.
func NewHistory(t Table, a Authenticator, start string) *History {
	h := &History{table: t, auth: a, cursor: -1}
	h.Navigate(start)
	return h
}

// Navigate pushes path and follows redirects, replacing or pushing entries
// as each decision asks. Forward entries are discarded.
func (h *History) Navigate(path string) Decision {
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
	return h.settle()
}

// Back moves to the previous entry. It reports false at the first entry.
func (h *History) Back() (Decision, bool) {
	if h.cursor <= 0 {
		return h.Render(), false
	}
	h.cursor--
	return h.settle(), true
}

// Render resolves the current entry again without moving.
func (h *History) Render() Decision {
	return h.settle()
}

// Current is the path of the current entry.
func (h *History) Current() string {
	return h.entries[h.cursor]
}

// Len is the number of entries, including ones after the cursor.
func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) settle() Decision {
	d := h.table.Resolve(h.Current(), h.auth)
	for i := 0; d.Redirect != "" && i < maxRedirects; i++ {
		if d.Replace {
			h.entries[h.cursor] = d.Redirect
		} else {
			h.entries = append(h.entries[:h.cursor+1], d.Redirect)
			h.cursor = len(h.entries) - 1
		}
		d = h.table.Resolve(h.Current(), h.auth)
	}
	return d
}
