package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// DefaultListName is the list provisioned for every new account.
const DefaultListName = "Watchlist"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// handleRegister creates an account, provisions its default list, and
// returns a signed session.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		s.writeDomainError(w, fmt.Errorf("%w: username, email, and a password of at least 8 characters are required", shared.ErrValidation))
		return
	}

	if _, err := s.users.GetByUsername(req.Username); err == nil {
		s.writeDomainError(w, fmt.Errorf("%w: username is taken", shared.ErrValidation))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		s.writeDomainError(w, err)
		return
	}

	if _, err := s.lists.Create(user.ID, DefaultListName, true); err != nil {
		s.writeDomainError(w, err)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: *user})
}

// handleLogin checks credentials and returns a signed session. Unknown
// usernames and wrong passwords answer identically.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeDomainError(w, err)
		return
	}

	user, err := s.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", codeUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", codeUnauthorized)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: *user})
}

// handleWhoami returns the authenticated user.
func (s *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}
