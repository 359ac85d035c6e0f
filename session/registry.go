package session

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSessions bounds the registry when no size is configured.
const DefaultMaxSessions = 10000

// Registry remembers the browsers that have logged in, keyed by session ID.
// Anonymous browsers take no slot: an ID the registry does not hold is
// anonymous. Once full the least recently used login is forgotten and its
// browser starts over as anonymous.
type Registry struct {
	sessions *lru.Cache[string, *Flag]
}

func NewRegistry(size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	cache, err := lru.New[string, *Flag](size)
	if err != nil {
		return nil, fmt.Errorf("creating session registry: %w", err)
	}
	return &Registry{sessions: cache}, nil
}

// NewID returns a fresh session ID. It registers nothing.
func (r *Registry) NewID() string {
	return uuid.NewString()
}

// Lookup returns the State of the browser holding id. Login stores the flag
// in the registry and Logout removes it again.
func (r *Registry) Lookup(id string) State {
	f, ok := r.sessions.Get(id)
	if !ok {
		f = &Flag{}
	}
	return &entry{id: id, flag: f, registry: r}
}

func (r *Registry) Get(id string) (*Flag, bool) {
	return r.sessions.Get(id)
}

// Len reports how many logged-in sessions are held.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

type entry struct {
	id       string
	flag     *Flag
	registry *Registry
}

var _ State = (*entry)(nil)

func (e *entry) Login() {
	e.flag.Login()
	e.registry.sessions.Add(e.id, e.flag)
}

func (e *entry) Logout() {
	e.flag.Logout()
	e.registry.sessions.Remove(e.id)
}

func (e *entry) IsAuthenticated() bool {
	return e.flag.IsAuthenticated()
}
