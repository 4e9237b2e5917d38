// ABOUTME: HTTP handlers for registration, login and profile retrieval
// ABOUTME: Business handlers invoked at the end of the interceptor chain

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/tollgate/internal/auth"
	"github.com/2389/tollgate/internal/metrics"
	"github.com/2389/tollgate/internal/store"
)

// maxPasswordLength is bcrypt's input limit.
const maxPasswordLength = 72

// CredentialsRequest is the JSON body for POST /auth/register and /auth/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse is the JSON body returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MeResponse is the JSON body returned by GET /user/me.
type MeResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// parseCredentials decodes and validates a CredentialsRequest.
func parseCredentials(r *http.Request) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, errors.New("email is invalid")
	}
	if len(req.Password) > maxPasswordLength {
		return nil, errors.New("password exceeds 72 bytes")
	}
	return &req, nil
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &store.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	err = s.store.CreateUser(r.Context(), user)
	if errors.Is(err, store.ErrEmailExists) {
		s.sendJSONError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		s.logger.Error("failed to create user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID)
	s.sendJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// handleLogin handles POST /auth/login.
// Unknown emails and wrong passwords produce the same 401.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var hash, userID string
	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		hash, userID = user.PasswordHash, user.ID
	case errors.Is(err, store.ErrNotFound):
		// fall through with an empty hash so timing matches a wrong password
	default:
		s.logger.Error("failed to look up user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !auth.CheckPassword(hash, req.Password) {
		s.sendJSONError(w, http.StatusUnauthorized, "Incorrect credentials")
		return
	}

	token, err := s.codec.Issue(userID)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	metrics.TokensIssued.Inc()

	s.sendJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// handleMe handles GET /user/me. The auth middleware guarantees a principal.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())
	s.sendJSON(w, http.StatusOK, MeResponse{
		Message: "Authenticated user",
		UserID:  principal.ID,
	})
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
