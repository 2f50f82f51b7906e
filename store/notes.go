package store

import (
	"context"
	"database/sql"
	"fmt"

	"user-notes/models"
)

// NoteStore persists notes. Every read and mutation is scoped by the owning
// user id inside the statement itself, so ownership checks and the action
// they guard are a single atomic operation.
type NoteStore struct{ DB *sql.DB }

func NewNoteStore(db *sql.DB) *NoteStore { return &NoteStore{DB: db} }

// Create inserts a note for the given owner and returns its id.
func (s *NoteStore) Create(ctx context.Context, userID int64, title, tags, content string) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO notes (user_id, title, tags, content) VALUES (?, ?, ?, ?)",
		userID, title, tags, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByOwner returns all of the owner's notes in insertion order.
func (s *NoteStore) ListByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, user_id, title, tags, content, created_at FROM notes WHERE user_id = ? ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

// Search returns the owner's notes whose chosen field contains substring.
// Unrecognized fields fall back to content.
func (s *NoteStore) Search(ctx context.Context, userID int64, field, substring string) ([]models.Note, error) {
	column := "content"
	switch field {
	case "title":
		column = "title"
	case "tags":
		column = "tags"
	}
	query := fmt.Sprintf(
		"SELECT id, user_id, title, tags, content, created_at FROM notes WHERE %s LIKE ? AND user_id = ? ORDER BY id",
		column)
	rows, err := s.DB.QueryContext(ctx, query, "%"+substring+"%", userID)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

// Update overwrites a note's fields in a single statement conditioned on
// ownership. ErrNotFound is returned when no row matched, whether the note
// is absent or owned by someone else.
func (s *NoteStore) Update(ctx context.Context, userID, noteID int64, title, tags, content string) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE notes SET title = ?, tags = ?, content = ? WHERE id = ? AND user_id = ?",
		title, tags, content, noteID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a note, conditioned on ownership like Update.
func (s *NoteStore) Delete(ctx context.Context, userID, noteID int64) error {
	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?", noteID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()
	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Tags, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
