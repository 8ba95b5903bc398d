// Package httpapi exposes the tracker to a companion host over loopback JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/maloquacious/solicitreview/internal/logger"
	"github.com/maloquacious/solicitreview/internal/prompt"
	"github.com/maloquacious/solicitreview/internal/review"
)

// ReadyFunc reports whether the backing store can serve requests.
type ReadyFunc func(ctx context.Context) error

// Server holds the collaborators behind the admin routes.
type Server struct {
	Tracker *review.Tracker
	Copy    prompt.Copy
	Ready   ReadyFunc
	Log     logger.Logger
	Version string
}

// Handler returns the route table.
//
//	GET  /live
//	GET  /ready
//	GET  /admin/status
//	POST /admin/launch      optional {"version": "1.2.0"}, must match the installed version
//	POST /admin/engagement
//	POST /admin/prompted
//	POST /admin/reset
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if s.Ready != nil {
			if err := s.Ready(r.Context()); err != nil {
				s.logger().Warn("not ready: %v", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("NOT READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	mux.Handle("GET /admin/status", jsonOnly(http.HandlerFunc(s.handleStatus)))
	mux.Handle("POST /admin/launch", jsonOnly(http.HandlerFunc(s.handleLaunch)))
	mux.Handle("POST /admin/engagement", jsonOnly(http.HandlerFunc(s.handleEngagement)))
	mux.Handle("POST /admin/prompted", jsonOnly(http.HandlerFunc(s.handlePrompted)))
	mux.Handle("POST /admin/reset", jsonOnly(http.HandlerFunc(s.handleReset)))

	return mux
}

func (s *Server) logger() logger.Logger {
	if s.Log == nil {
		return logger.Discard
	}
	return s.Log
}

type statusResponse struct {
	review.Status
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.Tracker.Status(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  st,
		Version: s.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleLaunch resets the counter against the server's own version. A body
// may name the version the client believes is installed; a mismatch is
// rejected so the stored launch version never drifts from the provider.
func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Version string `json:"version"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}
	current := s.Tracker.CurrentVersion()
	if v := strings.TrimSpace(payload.Version); v != "" && v != current {
		writeJSONError(w, http.StatusConflict, "version_mismatch",
			fmt.Sprintf("client version %q does not match installed version %q", v, current))
		return
	}
	reset, err := s.Tracker.Launch(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": reset})
}

type engagementResponse struct {
	Prompt bool         `json:"prompt"`
	Copy   *prompt.Copy `json:"copy,omitempty"`
}

// handleEngagement records an engagement. When eligible the response carries
// the dialog copy; the client calls /admin/prompted after the native review.
func (s *Server) handleEngagement(w http.ResponseWriter, r *http.Request) {
	ok, err := s.Tracker.ShouldPrompt(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	resp := engagementResponse{Prompt: ok}
	if ok {
		c := s.Copy
		resp.Copy = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePrompted(w http.ResponseWriter, r *http.Request) {
	if err := s.Tracker.MarkPrompted(r.Context()); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "prompted"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.Tracker.Reset(r.Context()); err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger().Error("admin request failed: %v", err)
	writeJSONError(w, http.StatusInternalServerError, "internal", err.Error())
}

// jsonOnly enforces JSON-only contract for admin routes.
func jsonOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept")
		if !strings.Contains(accept, "application/json") && accept != "" {
			writeJSONError(w, http.StatusNotAcceptable, "not_acceptable", "Accept must include application/json")
			return
		}
		if r.Method != http.MethodGet && r.ContentLength != 0 && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": msg,
	})
}
