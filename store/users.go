package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"user-notes/models"
)

const mysqlErrDuplicateEntry = 1062

// UserStore persists user accounts and their session tokens.
type UserStore struct{ DB *sql.DB }

func NewUserStore(db *sql.DB) *UserStore { return &UserStore{DB: db} }

// Create inserts a new account and returns its ID. Violating the username
// or email uniqueness constraint yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, username, passwordHash, email, pin string) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, pin) VALUES (?, ?, ?, ?)",
		username, passwordHash, email, pin)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByUsername fetches an account by its unique username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, pin, created_at FROM users WHERE username = ?",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Pin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// GetBySession returns the account matching BOTH the claimed id and the
// presented token. A cleared (NULL) token never matches, so a user with no
// live session cannot be authenticated.
func (s *UserStore) GetBySession(ctx context.Context, userID int64, token string) (models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, username, email, created_at FROM users WHERE id = ? AND session_token = ?",
		userID, token).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// SetSessionToken overwrites the account's session token. Any previously
// issued token stops matching, so at most one session is live per account.
func (s *UserStore) SetSessionToken(ctx context.Context, userID int64, token string) error {
	_, err := s.DB.ExecContext(ctx,
		"UPDATE users SET session_token = ? WHERE id = ?", token, userID)
	return err
}
