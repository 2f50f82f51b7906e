package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteStoreMock(t *testing.T) (*NoteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewNoteStore(db), mock
}

func noteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "tags", "content", "created_at"})
}

func TestNoteStoreCreate(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes (user_id, title, tags, content) VALUES (?, ?, ?, ?)")).
		WithArgs(int64(1), "groceries", "errands", "milk, eggs").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := s.Create(context.Background(), 1, "groceries", "errands", "milk, eggs")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestNoteStoreListByOwner(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	rows := noteRows().
		AddRow(1, 1, "first", "", "a", time.Now()).
		AddRow(2, 1, "second", "work", "b", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, tags, content, created_at FROM notes WHERE user_id = ? ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	notes, err := s.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Title)
	assert.Equal(t, int64(2), notes[1].ID)
}

func TestNoteStoreListByOwnerEmpty(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE user_id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(noteRows())

	notes, err := s.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteStoreSearchColumns(t *testing.T) {
	tests := []struct {
		field  string
		column string
	}{
		{"title", "title"},
		{"tags", "tags"},
		{"content", "content"},
		{"", "content"},
		{"bogus", "content"}, // unrecognized filters fall back to content
	}
	for _, tc := range tests {
		t.Run("field "+tc.field, func(t *testing.T) {
			s, mock := newNoteStoreMock(t)

			mock.ExpectQuery(regexp.QuoteMeta("WHERE "+tc.column+" LIKE ? AND user_id = ?")).
				WithArgs("%milk%", int64(1)).
				WillReturnRows(noteRows().AddRow(1, 1, "groceries", "", "milk", time.Now()))

			notes, err := s.Search(context.Background(), 1, tc.field, "milk")
			require.NoError(t, err)
			require.Len(t, notes, 1)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoteStoreUpdate(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET title = ?, tags = ?, content = ? WHERE id = ? AND user_id = ?")).
		WithArgs("new title", "tags", "new content", int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), 1, 5, "new title", "tags", "new content"))
}

func TestNoteStoreUpdateNotOwned(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	// Zero matched rows covers both a missing note and someone else's note.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET")).
		WithArgs("t", "", "c", int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), 2, 5, "t", "", "c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteStoreDelete(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = ? AND user_id = ?")).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), 1, 5))
}

func TestNoteStoreDeleteNotOwned(t *testing.T) {
	s, mock := newNoteStoreMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = ? AND user_id = ?")).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
