package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	appmw "user-notes/middleware"
	"user-notes/models"
	"user-notes/store"
)

// NoteStore is the note-repository surface the note handlers need. Every
// operation is scoped by the owning user id.
type NoteStore interface {
	Create(ctx context.Context, userID int64, title, tags, content string) (int64, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.Note, error)
	Search(ctx context.Context, userID int64, field, substring string) ([]models.Note, error)
	Update(ctx context.Context, userID, noteID int64, title, tags, content string) error
	Delete(ctx context.Context, userID, noteID int64) error
}

// NoteHandler serves note CRUD and search for the authenticated user.
type NoteHandler struct {
	Notes NoteStore
}

func NewNoteHandler(notes NoteStore) *NoteHandler { return &NoteHandler{Notes: notes} }

type noteRequest struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Tags    string `json:"tags"`
	Content string `json:"content"`
}

type searchRequest struct {
	Query string `json:"query"`
}

func validateNote(title, tags, content string) string {
	if title == "" || content == "" {
		return "Title and content are required"
	}
	if len(title) > 24 {
		return "Title must be 24 characters or fewer"
	}
	if len(tags) > 36 {
		return "Tags must be 36 characters or fewer"
	}
	return ""
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := appmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// A body-declared identity is never trusted; declaring someone else's id
	// is rejected outright.
	if req.UserID != 0 && req.UserID != owner.ID {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if msg := validateNote(req.Title, req.Tags, req.Content); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	id, err := h.Notes.Create(r.Context(), owner.ID, req.Title, req.Tags, req.Content)
	if err != nil {
		log.Printf("create note failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int64{"id": id})
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := appmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	notes, err := h.Notes.ListByOwner(r.Context(), owner.ID)
	if err != nil {
		log.Printf("list notes failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notes)
}

// Search filters the owner's notes by a substring match on the field named
// in the Type-Search header (title, content or tags).
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	owner, ok := appmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	field := r.Header.Get("Type-Search")
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if field == "" && req.Query == "" {
		http.Error(w, "A search filter is required", http.StatusBadRequest)
		return
	}

	notes, err := h.Notes.Search(r.Context(), owner.ID, field, req.Query)
	if err != nil {
		log.Printf("search notes failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := appmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	noteID, err := strconv.ParseInt(r.Header.Get("X-Note-Id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid note id", http.StatusBadRequest)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateNote(req.Title, req.Tags, req.Content); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.Notes.Update(r.Context(), owner.ID, noteID, req.Title, req.Tags, req.Content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Note not found", http.StatusNotFound)
			return
		}
		log.Printf("update note failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"id": noteID})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := appmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	noteID, err := strconv.ParseInt(r.Header.Get("X-Note-Id"), 10, 64)
	if err != nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	if err := h.Notes.Delete(r.Context(), owner.ID, noteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Note not found", http.StatusNotFound)
			return
		}
		log.Printf("delete note failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"deleted": noteID})
}
