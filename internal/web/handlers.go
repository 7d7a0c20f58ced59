package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/notes"
	"github.com/ldelaney/coachmem/internal/ops"
)

// captureTimeout bounds background capture work kicked off by the
// fire-and-forget remember endpoint.
const captureTimeout = 60 * time.Second

// Handlers contains the JSON API route handlers.
type Handlers struct {
	svc *ops.Memory
	log *logrus.Logger
}

type logMessageBody struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// HandleLogMessage handles POST /sessions/{id}/messages.
func (h *Handlers) HandleLogMessage(w http.ResponseWriter, r *http.Request) {
	var body logMessageBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	out, err := h.svc.LogMessage(r.Context(), ops.LogMessageInput{
		SessionID: r.PathValue("id"),
		Sender:    body.Sender,
		Text:      body.Text,
		Timestamp: body.Timestamp,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, out)
}

type rememberBody struct {
	Text       string            `json:"text,omitempty"`
	MemoryType string            `json:"memory_type,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// HandleRemember handles POST /sessions/{id}/remember. Capture runs in
// the background and must never delay or fail the caller's request; the
// response is always 202 once the input parses. With a text body a
// single segment is captured, without one the whole session is
// processed for exchange pairs.
func (h *Handlers) HandleRemember(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var body rememberBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	// Detached from the request context: the capture outlives the
	// response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()

		if body.Text != "" {
			h.svc.Remember(ctx, ops.RememberInput{
				SessionID:  sessionID,
				Text:       body.Text,
				MemoryType: body.MemoryType,
				Metadata:   body.Metadata,
			})
			return
		}
		if _, err := h.svc.ProcessSession(ctx, sessionID); err != nil {
			h.log.WithError(err).WithField("session_id", sessionID).
				Warn("background session processing failed")
		}
	}()

	renderJSON(w, http.StatusAccepted, map[string]string{
		"status":     "accepted",
		"session_id": sessionID,
	})
}

// HandleSearch handles GET /memory/search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			renderError(w, errors.NewInvalidRequest("limit must be an integer"))
			return
		}
		limit = v
	}

	out, err := h.svc.Search(r.Context(), ops.SearchInput{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

type timingsBody struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// HandleTimings handles POST /timings.
func (h *Handlers) HandleTimings(w http.ResponseWriter, r *http.Request) {
	var body timingsBody
	if err := decodeBody(r, &body); err != nil {
		renderError(w, err)
		return
	}

	out, err := ops.Timings(ops.TimingsInput{Text: body.Text, Duration: body.Duration})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleNotes handles GET /sessions/{id}/notes.
func (h *Handlers) HandleNotes(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	messages, err := h.svc.SessionHistory(r.Context(), sessionID, 0)
	if err != nil {
		renderError(w, err)
		return
	}

	rendered, err := notes.HTML(notes.Markdown(sessionID, messages))
	if err != nil {
		renderError(w, errors.NewInternal(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendered))
}
