package api

import (
	"encoding/json"
	"net/http"

	"github.com/jinkoo2/DocuForms/internal/field"
	"github.com/jinkoo2/DocuForms/internal/form"
	"github.com/jinkoo2/DocuForms/internal/markup"
	"github.com/jinkoo2/DocuForms/internal/render"
)

type renderRequest struct {
	Content string        `json:"content"`
	Answers []form.Answer `json:"answers,omitempty"`
}

type fieldInfo struct {
	Key       string       `json:"key"`
	Component string       `json:"component"`
	Kind      field.Kind   `json:"kind"`
	Label     string       `json:"label,omitempty"`
	Required  bool         `json:"required,omitempty"`
	Graded    bool         `json:"graded,omitempty"`
	Options   []string     `json:"options,omitempty"`
	Status    field.Status `json:"status,omitempty"`
}

// handleRender parses a document and returns everything the presentation
// layer needs: metadata, rendered HTML, field descriptors with current
// statuses, and the required-key set that gates submission.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes+1024*1024)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	meta, body, err := markup.SplitFrontMatter(req.Content)
	if err != nil {
		s.log.Warn("malformed front matter", "error", err)
	}
	tokens := markup.Tokenize(body)
	reg := field.Resolve(tokens)

	sess := form.NewSession(reg)
	if len(req.Answers) > 0 {
		sess.Hydrate(req.Answers)
		sess.Recalculate()
	}

	html, err := render.Document(tokens, reg, sess)
	if err != nil {
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fields := make([]fieldInfo, 0, len(reg.Fields()))
	for _, f := range reg.Fields() {
		info := fieldInfo{
			Key:       f.Key,
			Component: f.Component,
			Kind:      f.Kind,
			Label:     f.Label,
			Required:  f.Required,
			Graded:    f.Graded(),
			Options:   f.Options,
		}
		if st := sess.Status(f.Key); st != field.StatusNone {
			info.Status = st
		}
		fields = append(fields, info)
	}

	requiredKeys := reg.RequiredKeys()
	if requiredKeys == nil {
		requiredKeys = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"meta":           meta,
		"html":           html,
		"fields":         fields,
		"required_keys":  requiredKeys,
		"duplicate_keys": reg.DuplicateKeys(),
	})
}

// handleValidate checks a document for duplicate explicit field keys
// without persisting anything.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes+1024*1024)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	_, body, _ := markup.SplitFrontMatter(req.Content)
	reg := field.Resolve(markup.Tokenize(body))
	dups := reg.DuplicateKeys()
	if dups == nil {
		dups = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"valid":          len(dups) == 0,
		"duplicate_keys": dups,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
