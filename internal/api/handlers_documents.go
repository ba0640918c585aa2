package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jinkoo2/DocuForms/internal/docstore"
	"github.com/jinkoo2/DocuForms/internal/field"
	"github.com/jinkoo2/DocuForms/internal/markup"
)

// handleSaveDocument validates a document's field keys and persists it via
// the document store. A document with duplicate explicit keys is rejected
// as a whole — nothing is partially applied — listing every duplicated key.
func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes+1024*1024)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	meta, body, err := markup.SplitFrontMatter(req.Content)
	if err != nil {
		s.log.Warn("malformed front matter", "doc_id", docID, "error", err)
	}

	reg := field.Resolve(markup.Tokenize(body))
	if err := reg.ValidateKeys(); err != nil {
		var dupErr *field.DuplicateKeyError
		if errors.As(err, &dupErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error":          "duplicate field keys",
				"duplicate_keys": dupErr.Keys,
			})
			return
		}
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	title := req.Title
	if title == "" {
		title = meta.Title
	}

	doc, err := s.store.PutDocument(r.Context(), docID, docstore.DocumentUpdate{
		Title:   title,
		Content: req.Content,
	})
	if err != nil {
		jsonError(w, "failed to save document: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}
