package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Joseda-hg/dailytodo/internal/codec"
	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
	"github.com/Joseda-hg/dailytodo/internal/tracker"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.tmpl"))

type Server struct {
	tracker *tracker.Tracker
	log     *zap.Logger
	metrics *metrics

	// Handlers run concurrently; each request loads, mutates and saves the
	// whole collection under this lock.
	mu sync.Mutex
}

type taskRow struct {
	Task           model.Task `json:"task"`
	Percentage     int        `json:"percentage"`
	CompletedToday bool       `json:"completedToday"`
}

type overview struct {
	Today  model.Day           `json:"today"`
	Tasks  []taskRow           `json:"tasks"`
	Totals progress.Totals     `json:"totals"`
	Stats  progress.DailyStats `json:"stats"`
}

type incrementRequest struct {
	Amount int `json:"amount"`
}

type importRequest struct {
	Token   string `json:"token"`
	Confirm bool   `json:"confirm"`
}

type importResponse struct {
	Count    int  `json:"count"`
	Replaced bool `json:"replaced"`
}

func NewServer(t *tracker.Tracker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tracker: t, log: logger, metrics: newMetrics(t, logger)}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.indexHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", s.listHandler)
		r.Post("/tasks", s.createHandler)
		r.Get("/tasks/{id}", s.getHandler)
		r.Patch("/tasks/{id}", s.editHandler)
		r.Delete("/tasks/{id}", s.deleteHandler)
		r.Post("/tasks/{id}/complete", s.completeHandler)
		r.Post("/tasks/{id}/increment", s.incrementHandler)
		r.Get("/export", s.exportHandler)
		r.Post("/import", s.importHandler)
		r.Get("/settings", s.getSettingsHandler)
		r.Put("/settings", s.putSettingsHandler)
	})
	return r
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := indexTemplate.Execute(w, s.buildOverview(state)); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.buildOverview(state))
}

func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	task, _, err := progress.Find(state.Tasks, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.row(task))
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	var input tracker.NewTask
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.tracker.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	_, created, err := s.tracker.AddTask(r.Context(), state, input)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, s.row(created))
}

func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	var edit tracker.TaskEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.tracker.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	_, edited, err := s.tracker.EditTask(r.Context(), state, chi.URLParam(r, "id"), edit)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.row(edited))
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(ctx context.Context, state tracker.State) (tracker.State, error) {
		return s.tracker.DeleteTask(ctx, state, chi.URLParam(r, "id"))
	})
}

func (s *Server) completeHandler(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(ctx context.Context, state tracker.State) (tracker.State, error) {
		return s.tracker.Complete(ctx, state, chi.URLParam(r, "id"))
	})
}

func (s *Server) incrementHandler(w http.ResponseWriter, r *http.Request) {
	var req incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mutate(w, r, func(ctx context.Context, state tracker.State) (tracker.State, error) {
		return s.tracker.Increment(ctx, state, chi.URLParam(r, "id"), req.Amount)
	})
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	token, err := s.tracker.Export(state)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// importHandler only replaces the stored tasks when confirm is set;
// otherwise it reports how many tasks the token holds.
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.tracker.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	var count int
	_, replaced, err := s.tracker.Import(r.Context(), state, req.Token, func(tasks []model.Task) bool {
		count = len(tasks)
		return req.Confirm
	})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Count: count, Replaced: replaced})
}

func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.tracker.LoadSettings(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) putSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	saved, err := s.tracker.SaveSettings(r.Context(), settings)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(context.Context, tracker.State) (tracker.State, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.tracker.Load(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	next, err := fn(r.Context(), state)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.buildOverview(next))
}

func (s *Server) load(ctx context.Context) (tracker.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Load(ctx)
}

func (s *Server) buildOverview(state tracker.State) overview {
	today := s.tracker.Today()
	rows := make([]taskRow, 0, len(state.Tasks))
	for _, task := range state.Tasks {
		rows = append(rows, s.row(task))
	}
	return overview{
		Today:  today,
		Tasks:  rows,
		Totals: state.Totals(),
		Stats:  state.Stats(today),
	}
}

func (s *Server) row(task model.Task) taskRow {
	return taskRow{
		Task:           task,
		Percentage:     progress.Percentage(task),
		CompletedToday: progress.IsCompletedToday(task, s.tracker.Today()),
	}
}

func statusFor(err error) int {
	var notFound *progress.NotFoundError
	var importErr *codec.ImportError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &importErr), errors.Is(err, tracker.ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(recorder, r)

		status := recorder.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(strings.TrimSpace(err.Error())))
}
