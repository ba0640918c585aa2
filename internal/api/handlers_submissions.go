package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jinkoo2/DocuForms/internal/docstore"
	"github.com/jinkoo2/DocuForms/internal/field"
	"github.com/jinkoo2/DocuForms/internal/form"
	"github.com/jinkoo2/DocuForms/internal/markup"
)

type submissionRequest struct {
	UserID string `json:"user_id,omitempty"`
	// Answers are ordered: the order fields were touched, which becomes
	// the stored answer order.
	Answers []submittedValue `json:"answers"`
}

type submittedValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// handleCreateSubmission grades a viewer's answers against the stored
// document and persists the flattened answer set. Submission is blocked
// while any required field is incomplete.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := s.store.GetDocument(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	_, body, _ := markup.SplitFrontMatter(doc.Content)
	reg := field.Resolve(markup.Tokenize(body))
	sess := form.NewSession(reg)
	for _, a := range req.Answers {
		sess.SetValue(a.Key, a.Value)
	}

	if incomplete := sess.IncompleteRequired(); len(incomplete) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":      "required fields incomplete",
			"incomplete": incomplete,
		})
		return
	}

	sub := docstore.Submission{
		ID:          uuid.NewString(),
		DocumentID:  docID,
		UserID:      req.UserID,
		Answers:     sess.BuildSubmission(),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.CreateSubmission(r.Context(), sub); err != nil {
		jsonError(w, "failed to store submission: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}

// handleListSubmissions returns the stored submissions for a document.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	subs, err := s.store.ListSubmissions(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to list submissions: "+err.Error(), http.StatusBadGateway)
		return
	}
	if subs == nil {
		subs = []docstore.Submission{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"submissions": subs})
}
