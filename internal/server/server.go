// Package server serves the home and workspace pages over gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paperview/paperview/internal/i18n"
	"github.com/paperview/paperview/internal/paper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Library lists stored records in import order. *storage.DB satisfies it.
type Library interface {
	List(limit int) ([]paper.Record, error)
}

// Deps holds everything the router needs.
type Deps struct {
	Log      *logrus.Logger
	Library  Library // nil serves an empty library
	Bundle   *i18n.Bundle
	Language string  // used when neither ?lang= nor Accept-Language match
	Layout   string  // graph layout, see viz.ValidLayouts
	Seed     *uint64 // fixes the mock edges of every graph when set
}

// Route is a page route of the site.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Name   string `json:"name"`
}

// Routes returns the page routes in registration order.
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodGet, Path: "/workspace", Name: "workspace"},
	}
}

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *Deps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(requestID(deps.Log))
	r.Use(language(deps.Language))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(prometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *Deps) http.Handler {
	if deps.Log == nil {
		deps.Log = logrus.New()
		deps.Log.SetOutput(io.Discard)
	}
	if deps.Bundle == nil {
		deps.Bundle = i18n.MustNewBundle()
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("home").Parse(homeTemplate)))
	setupMiddleware(r, deps)

	h := &handler{deps: deps, log: deps.Log}
	pages := map[string]gin.HandlerFunc{
		"home":      h.home,
		"workspace": h.workspace,
	}
	for _, route := range Routes() {
		r.Handle(route.Method, route.Path, pages[route.Name])
	}

	r.GET("/graph.json", h.graphJSON)
	r.GET("/healthz", h.healthz)

	return r
}

// Run serves handler on addr until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
