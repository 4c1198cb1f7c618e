package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"neon-snake/internal/cache"
	"neon-snake/internal/config"
	"neon-snake/internal/site"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	cfg     config.Config
	content *site.Content
	cache   cache.Cache
	logger  *zap.Logger
	router  *mux.Router
	server  *http.Server
}

// NewServer wires the route table onto a fresh router.
// A nil cache disables render caching.
func NewServer(cfg config.Config, content *site.Content, c cache.Cache, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		content: content,
		cache:   c,
		logger:  logger,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	for _, rt := range site.Routes(s.cfg.Prefix) {
		s.router.Handle(rt.Path, s.handlerFor(rt.Action)).Methods(http.MethodGet, http.MethodHead)
	}

	// "/projects/neon-snake" -> "/projects/neon-snake/"
	if s.cfg.Prefix != "" {
		s.router.Handle(s.cfg.Prefix, http.RedirectHandler(s.cfg.Prefix+"/", http.StatusMovedPermanently)).
			Methods(http.MethodGet, http.MethodHead)
	}

	// Everything else the page references (script, css, images)
	s.router.PathPrefix(config.StaticPath).
		Handler(http.StripPrefix(config.StaticPath, http.FileServer(filesOnly{http.Dir(s.content.StaticDir())}))).
		Methods(http.MethodGet, http.MethodHead)
}

func (s *Server) handlerFor(a site.Action) http.Handler {
	switch a := a.(type) {
	case site.RenderTemplate:
		return s.handleTemplate(a.Name)
	case site.ServeFile:
		return s.handleFile(a.Name)
	default:
		return http.NotFoundHandler()
	}
}

// Handler returns the router wrapped in the request middleware
func (s *Server) Handler() http.Handler {
	return s.requestID(s.logRequests(s.router))
}

// Start launches the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("Web server listening", zap.String("addr", s.cfg.Addr), zap.String("prefix", s.cfg.Prefix))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleTemplate(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := s.render(r.Context(), name)
		if err != nil {
			if errors.Is(err, site.ErrTemplateNotFound) {
				s.logger.Error("Template missing", zap.String("template", name), zap.Error(err))
				http.Error(w, "Template not found", http.StatusInternalServerError)
				return
			}
			s.logger.Error("Template error", zap.String("template", name), zap.Error(err))
			http.Error(w, "Template error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}
}

// render renders into memory first so a failing template never sends a partial 200.
func (s *Server) render(ctx context.Context, name string) ([]byte, error) {
	key := "render:" + name

	if s.cache != nil {
		body, err := s.cache.Get(ctx, key)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	var buf bytes.Buffer
	if err := s.content.Render(&buf, name); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, buf.Bytes(), s.cfg.Cache.TTL); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return buf.Bytes(), nil
}

func (s *Server) handleFile(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, info, err := s.content.Open(name)
		if err != nil {
			if errors.Is(err, site.ErrFileNotFound) {
				s.logger.Debug("Static file missing", zap.String("file", name))
				http.NotFound(w, r)
				return
			}
			s.logger.Error("Static file error", zap.String("file", name), zap.Error(err))
			http.Error(w, "File error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		// ServeContent picks the content type from the extension
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}
