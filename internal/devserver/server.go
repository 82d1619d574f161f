// Package devserver is a small backend for local development. It accepts
// focus reports, serves project meeting times and can be switched offline so
// the client's retry queue can be exercised.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/logging"
	"github.com/alexanderramin/tandem/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Key prefixes of the backend's records. They share the client's store but
// never its keys.
const (
	focusPrefix   = "backend.focus:"
	projectPrefix = "backend.project:"
)

// BasePath is where the API is mounted.
const BasePath = "/api/v1"

// FocusTotal is the accumulated focus time of one (user, project).
type FocusTotal struct {
	UserID       string `json:"userId"`
	ProjectID    string `json:"projectId"`
	TotalSeconds int64  `json:"totalSeconds"`
}

// Summary is the response of GET /focus-sessions/summary.
type Summary struct {
	Totals       []FocusTotal `json:"totals"`
	TotalSeconds int64        `json:"totalSeconds"`
}

// ProjectRecord is the backend's view of a project.
type ProjectRecord struct {
	ID          string `json:"id"`
	NextMeeting string `json:"nextMeeting"`
}

// Server holds the backend state.
type Server struct {
	store   store.Store
	log     *slog.Logger
	offline atomic.Bool
}

// New creates a backend persisting to st.
func New(st store.Store, log *slog.Logger) *Server {
	return &Server{store: st, log: logging.NoopIfNil(log)}
}

// SetOffline makes report and project endpoints answer 503.
func (s *Server) SetOffline(offline bool) {
	s.offline.Store(offline)
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Group(func(r chi.Router) {
			r.Use(s.offlineMiddleware)
			r.Post("/focus-sessions", s.handleSubmitFocus)
			r.Get("/focus-sessions/summary", s.handleSummary)
			r.Get("/projects/{projectID}", s.handleGetProject)
			r.Put("/projects/{projectID}", s.handlePutProject)
		})
		r.Put("/admin/offline", s.handleSetOffline)
	})
	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) offlineMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.offline.Load() {
			writeError(w, http.StatusServiceUnavailable, ReasonOffline, "backend is offline")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "offline": s.offline.Load()})
}

func (s *Server) handleSubmitFocus(w http.ResponseWriter, r *http.Request) {
	var report domain.FocusReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, ReasonBadRequest, "invalid JSON body")
		return
	}
	switch {
	case report.UserID == "":
		writeError(w, http.StatusBadRequest, ReasonInvalidField, "userId is required")
		return
	case report.ProjectID == "":
		writeError(w, http.StatusBadRequest, ReasonInvalidField, "projectId is required")
		return
	case report.FocusSeconds <= 0:
		writeError(w, http.StatusBadRequest, ReasonInvalidField, "focusSeconds must be positive")
		return
	}

	total, err := s.addFocus(r.Context(), report)
	if err != nil {
		s.log.Error("recording focus report failed", "error", err)
		writeError(w, http.StatusInternalServerError, ReasonInternal, "could not record report")
		return
	}
	writeJSON(w, http.StatusCreated, FocusTotal{
		UserID:       report.UserID,
		ProjectID:    report.ProjectID,
		TotalSeconds: total,
	})
}

func (s *Server) addFocus(ctx context.Context, report domain.FocusReport) (int64, error) {
	var total int64
	err := s.store.Update(ctx, focusKey(report.UserID, report.ProjectID), func(cur []byte, ok bool) ([]byte, error) {
		total = report.FocusSeconds
		if ok {
			prev, err := strconv.ParseInt(string(cur), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("decoding focus total: %w", err)
			}
			total += prev
		}
		return []byte(strconv.FormatInt(total, 10)), nil
	})
	return total, err
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userFilter := r.URL.Query().Get("userId")

	prefix := focusPrefix
	if userFilter != "" {
		prefix += url.QueryEscape(userFilter) + ":"
	}
	keys, err := s.store.Enumerate(ctx, prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ReasonInternal, "could not list totals")
		return
	}

	summary := Summary{Totals: []FocusTotal{}}
	for _, k := range keys {
		userID, projectID, err := parseFocusKey(k)
		if err != nil {
			s.log.Warn("skipping malformed focus key", "key", k)
			continue
		}
		data, ok, err := s.store.Get(ctx, k)
		if err != nil {
			writeError(w, http.StatusInternalServerError, ReasonInternal, "could not read totals")
			return
		}
		if !ok {
			continue
		}
		seconds, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			s.log.Warn("skipping malformed focus total", "key", k)
			continue
		}
		summary.Totals = append(summary.Totals, FocusTotal{UserID: userID, ProjectID: projectID, TotalSeconds: seconds})
		summary.TotalSeconds += seconds
	}
	sort.Slice(summary.Totals, func(i, j int) bool {
		a, b := summary.Totals[i], summary.Totals[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.ProjectID < b.ProjectID
	})
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	data, ok, err := s.store.Get(r.Context(), projectPrefix+url.QueryEscape(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, ReasonInternal, "could not read project")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, ReasonNotFound, fmt.Sprintf("project %q not found", id))
		return
	}

	var rec ProjectRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		writeError(w, http.StatusInternalServerError, ReasonInternal, "corrupt project record")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	var body struct {
		NextMeeting string `json:"nextMeeting"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ReasonBadRequest, "invalid JSON body")
		return
	}
	body.NextMeeting = strings.TrimSpace(body.NextMeeting)
	if body.NextMeeting != "" {
		if err := domain.ValidateMeetingTime(body.NextMeeting); err != nil {
			writeError(w, http.StatusBadRequest, ReasonInvalidField, err.Error())
			return
		}
	}

	rec := ProjectRecord{ID: id, NextMeeting: body.NextMeeting}
	data, err := json.Marshal(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ReasonInternal, "could not encode project")
		return
	}
	if err := s.store.Set(r.Context(), projectPrefix+url.QueryEscape(id), data); err != nil {
		writeError(w, http.StatusInternalServerError, ReasonInternal, "could not save project")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSetOffline(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Offline *bool `json:"offline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Offline == nil {
		writeError(w, http.StatusBadRequest, ReasonBadRequest, `body must be {"offline": true|false}`)
		return
	}
	s.SetOffline(*body.Offline)
	s.log.Info("offline switch", "offline", *body.Offline)
	writeJSON(w, http.StatusOK, map[string]bool{"offline": *body.Offline})
}

func focusKey(userID, projectID string) string {
	return focusPrefix + url.QueryEscape(userID) + ":" + url.QueryEscape(projectID)
}

func parseFocusKey(key string) (userID, projectID string, err error) {
	rest, ok := strings.CutPrefix(key, focusPrefix)
	if !ok {
		return "", "", errors.New("not a focus key")
	}
	u, p, ok := strings.Cut(rest, ":")
	if !ok {
		return "", "", errors.New("missing project part")
	}
	if userID, err = url.QueryUnescape(u); err != nil {
		return "", "", err
	}
	if projectID, err = url.QueryUnescape(p); err != nil {
		return "", "", err
	}
	return userID, projectID, nil
}
