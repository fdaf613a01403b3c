// Package web serves the HTML pages and form endpoints.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/copywriter/internal/auth"
	"github.com/mmynk/copywriter/internal/metrics"
	"github.com/mmynk/copywriter/internal/middleware"
	"github.com/mmynk/copywriter/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	loginPath = "/login"
	homePath  = "/home"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Deps are the collaborators a Server needs.
type Deps struct {
	Authenticator auth.Authenticator
	Users         middleware.UserLookup
	Sessions      *auth.SessionManager
	Descriptions  *service.DescriptionService
	Cookie        CookieConfig
	Metrics       *metrics.Metrics
	Health        Pinger
	Logger        *slog.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	auth         auth.Authenticator
	users        middleware.UserLookup
	sessions     *auth.SessionManager
	descriptions *service.DescriptionService
	cookie       CookieConfig
	metrics      *metrics.Metrics
	health       Pinger
	logger       *slog.Logger
	templates    *template.Template
}

// NewServer parses the embedded templates and returns a Server.
func NewServer(deps Deps) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		auth:         deps.Authenticator,
		users:        deps.Users,
		sessions:     deps.Sessions,
		descriptions: deps.Descriptions,
		cookie:       deps.Cookie,
		metrics:      deps.Metrics,
		health:       deps.Health,
		logger:       logger,
		templates:    tmpl,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(s.logger, s.metrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "This page does not exist.", homePath)
	})

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, homePath, http.StatusFound)
	})

	r.Get("/registrar", s.handleRegisterForm)
	r.Post("/registrar", s.handleRegister)
	r.Get(loginPath, s.handleLoginForm)
	r.Post(loginPath, s.handleLogin)
	r.Get("/logout", s.handleLogout)

	gate := middleware.RequireSession(s.sessions, s.users, s.cookie.Name, loginPath)

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Get(homePath, s.handleHome)
		r.Post(homePath, s.handleCreate)
		r.Get("/editar/{id}", s.handleEditForm)
		r.Post("/editar/{id}", s.handleEdit)
	})

	// Non-POST requests are refused before the session gate.
	del := gate(http.HandlerFunc(s.handleDelete))
	r.HandleFunc("/excluir_descricao/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeMessage(w, http.StatusMethodNotAllowed, "Descriptions can only be deleted from the home page.", homePath)
			return
		}
		del.ServeHTTP(w, r)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.Error("Health check failed", "error", err)
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
