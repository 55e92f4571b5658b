package api

import (
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/auth"
)

type loginRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// handleLogin opens a session for an identity already authenticated by
// whatever fronts this service (no OAuth upstream in this subsystem).
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.Role == "" {
		http.Error(w, "user_id et role sont obligatoires", http.StatusBadRequest)
		return
	}
	identity := auth.Identity{UserID: req.UserID, UserName: req.UserName, Role: req.Role}
	if err := s.authManager.Login(w, r, identity); err != nil {
		http.Error(w, "impossible d'ouvrir la session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

// handleLogout clears the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authManager.Logout(w, r); err != nil {
		http.Error(w, "impossible de fermer la session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAuthStatus reports the current session's identity, if any.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"identity":      identity,
	})
}
