// Package auth carries the authenticated {user_id, role} context through
// a gorilla/sessions cookie, guarding API routes before a request reaches
// a use case.
package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName     = "btp-session"
	sessionUserID   = "user_id"
	sessionRole     = "role"
	sessionUserName = "user_name"
)

// Manager reads and writes the authenticated user context in a signed cookie.
type Manager struct {
	store sessions.Store
}

// NewManager wires a Manager over a cookie store built from the
// application's session secret.
func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// Identity is the authenticated user carried in the session.
type Identity struct {
	UserID   int64
	UserName string
	Role     string
}

// Login opens a new session for the given identity.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, identity Identity) error {
	session, err := m.store.New(r, sessionName)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	session.Values[sessionUserID] = identity.UserID
	session.Values[sessionUserName] = identity.UserName
	session.Values[sessionRole] = identity.Role
	return session.Save(r, w)
}

// Logout clears the session.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Identify extracts the authenticated identity from the request's session.
// Returns an error if no session exists or it carries no user_id.
func (m *Manager) Identify(r *http.Request) (Identity, error) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return Identity{}, fmt.Errorf("get session: %w", err)
	}

	userID, ok := session.Values[sessionUserID].(int64)
	if !ok {
		return Identity{}, fmt.Errorf("no authenticated user in session")
	}
	role, _ := session.Values[sessionRole].(string)
	userName, _ := session.Values[sessionUserName].(string)

	return Identity{UserID: userID, UserName: userName, Role: role}, nil
}
