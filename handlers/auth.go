package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"user-notes/models"
	"user-notes/store"
	"user-notes/utils"
)

// UserStore is the credential-store surface the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, email, pin string) (int64, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	SetSessionToken(ctx context.Context, userID int64, token string) error
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewAuthHandler(users UserStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{Users: users, BcryptCost: bcryptCost}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Pin      string `json:"pin"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" || req.Pin == "" {
		http.Error(w, "All fields are required", http.StatusBadRequest)
		return
	}
	if len(req.Username) > 24 {
		http.Error(w, "Username must be 24 characters or fewer", http.StatusBadRequest)
		return
	}
	if len(req.Email) > 254 || len(req.Password) > 254 {
		http.Error(w, "Email and password must be 254 characters or fewer", http.StatusBadRequest)
		return
	}
	if len(req.Pin) != 6 {
		http.Error(w, "Pin must be 6 digits", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.Users.Create(r.Context(), req.Username, hash, req.Email, req.Pin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "Username or email already in use", http.StatusConflict)
			return
		}
		log.Printf("create user failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Login verifies credentials and mints a fresh session token, overwriting
// the stored one so any earlier session stops working. Unknown usernames and
// wrong passwords produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("user lookup failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err != nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := utils.NewSessionToken()
	if err != nil {
		log.Printf("token generation failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := h.Users.SetSessionToken(r.Context(), user.ID, token); err != nil {
		log.Printf("session token update failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Expose-Headers", "X-Session-Id")
	w.Header().Set("X-Session-Id", token)
	json.NewEncoder(w).Encode(loginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
