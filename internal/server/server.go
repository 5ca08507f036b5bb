// Package server exposes the embed renderer over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lepinkainen/embed-forge/pkg/cards"
	"github.com/lepinkainen/embed-forge/pkg/render"
	"github.com/lepinkainen/embed-forge/pkg/shortcode"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// maxBodyBytes caps request documents
const maxBodyBytes = 1 << 20

// Server serves rendered embeds, filtered posts and card meta tags
type Server struct {
	filter   *shortcode.Filter
	renderer *render.Renderer
	router   chi.Router
}

// EmbedResponse is the body of GET /oembed
type EmbedResponse struct {
	URL    string `json:"url"`
	Kind   string `json:"kind"`
	HTML   string `json:"html"`
	Footer string `json:"footer"`
}

// RenderResponse is the body of POST /render
type RenderResponse struct {
	HTML   string `json:"html"`
	Footer string `json:"footer"`
}

// CardsResponse is the body of POST /cards
type CardsResponse struct {
	Tags []cards.MetaTag `json:"tags"`
	HTML string          `json:"html"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a server for filter. allowedOrigins configures CORS, empty allows any origin.
func New(filter *shortcode.Filter, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	s := &Server{
		filter:   filter,
		renderer: filter.Renderer(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Get("/shortcodes", s.handleShortcodes)
	router.Get("/oembed", s.handleEmbed)
	router.Post("/render", s.handleRender)
	router.Post("/cards", s.handleCards)

	s.router = router
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleShortcodes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.filter.Registry().List())
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	widget, ok := widgets.Resolve(rawURL)
	if !ok {
		writeError(w, http.StatusBadRequest, "url is not an embeddable Twitter, Vine or Periscope URL")
		return
	}

	page := render.NewPage()
	html := s.renderer.Render(r.Context(), page, widget)
	writeJSON(w, http.StatusOK, EmbedResponse{
		URL:    rawURL,
		Kind:   widget.Kind(),
		HTML:   string(html),
		Footer: string(s.renderer.Footer(page)),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var post site.Post
	if !decodeBody(w, r, &post) {
		return
	}

	page := render.NewPage()
	html := s.filter.ApplyPost(r.Context(), page, post)
	writeJSON(w, http.StatusOK, RenderResponse{
		HTML:   html,
		Footer: string(s.renderer.Footer(page)),
	})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var post site.Post
	if !decodeBody(w, r, &post) {
		return
	}

	card, err := cards.ForPost(post, s.renderer.Options())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	html, err := card.Render()
	if err != nil {
		slog.Error("Failed to render card", "post", post.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render card")
		return
	}
	writeJSON(w, http.StatusOK, CardsResponse{Tags: card.MetaTags(), HTML: html})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
