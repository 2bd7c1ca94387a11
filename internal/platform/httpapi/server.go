// Package httpapi exposes the game engine as a JSON API.
//
// Routes:
//   - POST   /players                    log in or register a player
//   - GET    /themes                     playable themes
//   - POST   /sessions                   create a session
//   - GET    /sessions/{id}              session snapshot
//   - POST   /sessions/{id}/levels       start the current level
//   - POST   /sessions/{id}/submit       submit a selection
//   - POST   /sessions/{id}/tick         advance the level clock
//   - POST   /sessions/{id}/advance      continue after a completed level
//   - POST   /sessions/{id}/end          finish the session
//   - DELETE /sessions/{id}              abandon the session
//   - GET    /scores                     top players
//
// A session is only reachable while it is live; once its final score is
// saved it leaves the engine registry and its routes return 404.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/session"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// errBadRequest marks client input errors.
var errBadRequest = errors.New("bad request")

// Server bundles the router and the engine it serves.
type Server struct {
	r      *chi.Mux
	eng    *engine.Engine
	logger *log.Logger
}

// New constructs a Server, installs middleware and registers routes.
// A nil logger discards log output.
func New(eng *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), eng: eng, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": eng.Registry().Count()})
	})

	s.r.Post("/players", s.handleLogin)
	s.r.Get("/themes", s.handleThemes)
	s.r.Get("/scores", s.handleScores)

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.withGame)
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleAbandon)
			r.Post("/levels", s.handleStartLevel)
			r.Post("/submit", s.handleSubmit)
			r.Post("/tick", s.handleTick)
			r.Post("/advance", s.handleAdvance)
			r.Post("/end", s.handleEnd)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not found: " + r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorRes{Error: "method not allowed"})
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

type ctxGameKey struct{}

// withGame loads the live game named by the {id} URL parameter.
func (s *Server) withGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g, err := s.eng.Game(chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, g)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gameFrom(r *http.Request) *engine.Game {
	g, _ := r.Context().Value(ctxGameKey{}).(*engine.Game)
	return g
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, created, err := s.eng.Login(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toPlayer(p, created))
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.eng.Themes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toThemes(themes))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := engine.DefaultTopScores
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		limit = n
	}
	scores, err := s.eng.TopScores(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScores(scores))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.PlayerID <= 0 || req.ThemeID <= 0 {
		s.writeError(w, fmt.Errorf("%w: player_id and theme_id are required", errBadRequest))
		return
	}

	p, err := s.eng.Player(r.Context(), req.PlayerID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, err := s.eng.CreateSession(r.Context(), p, req.ThemeID, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSession(g.Snapshot()))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSession(gameFrom(r).Snapshot()))
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	s.eng.Abandon(gameFrom(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartLevel(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	if err := s.eng.StartLevel(r.Context(), g); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSession(g.Snapshot()))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	cells, ok := toCells(req.Cells)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: cells must be [row, col] pairs", errBadRequest))
		return
	}

	g := gameFrom(r)
	v, err := s.eng.Submit(r.Context(), g, cells)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdictRes{
		Outcome: v.Outcome.String(),
		Word:    v.Word,
		Session: toSession(g.Snapshot()),
	})
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	var req tickReq
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	g := gameFrom(r)
	if _, err := s.eng.Tick(r.Context(), g, time.Duration(req.ElapsedMS)*time.Millisecond); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSession(g.Snapshot()))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	err := s.eng.Advance(r.Context(), g)
	var stateErr *session.InvalidStateError
	if errors.As(err, &stateErr) {
		s.writeError(w, err)
		return
	}
	if err != nil {
		// The session moved on; only persisting it failed.
		s.logger.Warn("advance: could not save results", "session", g.ID(), "error", err)
	}
	writeJSON(w, http.StatusOK, toSession(g.Snapshot()))
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	score, err := s.eng.End(r.Context(), g)
	var stateErr *session.InvalidStateError
	if errors.As(err, &stateErr) {
		s.writeError(w, err)
		return
	}

	res := endRes{Score: score, Saved: err == nil}
	if err != nil {
		res.Error = err.Error()
		s.logger.Warn("end: could not save results", "session", g.ID(), "error", err)
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ helpers ------------------------------------

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var (
		stateErr        *session.InvalidStateError
		startErr        *session.LevelStartError
		insufficientErr *wordbank.InsufficientWordsError
	)
	switch {
	case errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.As(err, &startErr), errors.As(err, &insufficientErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidName), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorRes{Error: err.Error()})
}
