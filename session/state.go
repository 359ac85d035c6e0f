// Package session tracks whether a browser has logged in.
//
// Every browser owns one State for the lifetime of the process. Nothing is
// persisted: a restart starts every visitor over as anonymous.
package session

import "sync/atomic"

// State is the authentication flag of one browser.
type State interface {
	Login()
	Logout()
	IsAuthenticated() bool
}

// Flag is the in-memory State. The zero value is anonymous.
type Flag struct {
	authenticated atomic.Bool
}

var _ State = (*Flag)(nil)

func (f *Flag) Login() {
	f.authenticated.Store(true)
}

func (f *Flag) Logout() {
	f.authenticated.Store(false)
}

func (f *Flag) IsAuthenticated() bool {
	return f.authenticated.Load()
}
