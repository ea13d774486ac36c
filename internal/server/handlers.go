package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/ats-tailor/internal/backend"
	"github.com/jonathan/ats-tailor/internal/jobinfo"
	"github.com/jonathan/ats-tailor/internal/keywords"
	"github.com/jonathan/ats-tailor/internal/resume"
	"github.com/jonathan/ats-tailor/internal/session"
	"github.com/jonathan/ats-tailor/internal/store"
	"github.com/jonathan/ats-tailor/internal/types"
)

// attachTimeout bounds one attachment drive end to end
const attachTimeout = 60 * time.Second

// ack is the uniform mutation response
type ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type pageRequest struct {
	URL  string `json:"url" validate:"required,url"`
	HTML string `json:"html" validate:"required"`
	Auto bool   `json:"auto"`
}

type extractRequest struct {
	Description string `json:"description" validate:"required"`
}

type attachRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type storeCVRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleJobInfo extracts posting details from a page snapshot
func (s *Server) handleJobInfo(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, jobinfo.Extract(req.URL, req.HTML))
}

// handleExtract runs keyword extraction over a raw description
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, keywords.Extract(req.Description))
}

// handleTailor runs the full session pipeline for a page snapshot
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !s.decode(w, r, &req) {
		return
	}

	outcome, err := s.pipeline.Run(r.Context(), session.PageInput{URL: req.URL, HTML: req.HTML, Auto: req.Auto})
	if err != nil {
		writeError(w, pipelineStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// handleAttach drives the attachment loops for the last generated documents
func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request) {
	var req attachRequest
	if !s.decode(w, r, &req) {
		return
	}

	var docs types.GeneratedDocuments
	if err := store.GetJSON(r.Context(), s.store, store.KeyLastDocuments, &docs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusPreconditionFailed, "no generated documents to attach")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), attachTimeout)
	defer cancel()

	if err := s.attachFn(ctx, req.URL, &docs); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ack{Success: true, Message: "documents attached"})
}

// handleStoreCV stores the user's base CV text and its parsed form
func (s *Server) handleStoreCV(w http.ResponseWriter, r *http.Request) {
	var req storeCVRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.store.Set(r.Context(), store.KeyUserCVText, []byte(req.Text)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	parsed := resume.Parse(req.Text)
	if err := store.SetJSON(r.Context(), s.store, store.KeyUserCV, parsed); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ack{Success: true, Message: "CV stored"})
}

// handleDocuments returns the last generated documents
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	var docs types.GeneratedDocuments
	err := store.GetJSON(r.Context(), s.store, store.KeyLastDocuments, &docs)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no documents generated yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := types.DefaultPreferences()
	err := store.GetJSON(r.Context(), s.store, store.KeyPreferences, &prefs)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs types.Preferences
	if !s.decode(w, r, &prefs) {
		return
	}
	if err := store.SetJSON(r.Context(), s.store, store.KeyPreferences, prefs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The auto-tailor switch is read separately by the pipeline
	if err := store.SetJSON(r.Context(), s.store, store.KeyAutoTailor, prefs.AutoTailor); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ack{Success: true, Message: "preferences saved"})
}

// decode parses and validates a JSON request body, writing the error
// response itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(into); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pipelineStatus maps pipeline failures onto HTTP statuses
func pipelineStatus(err error) int {
	var backendErr *backend.Error
	switch {
	case errors.Is(err, session.ErrTailoringInFlight), errors.Is(err, session.ErrAutoTailorDisabled):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoJobDescription):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNoUserDocument):
		return http.StatusPreconditionFailed
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ack{Success: false, Message: message})
}
