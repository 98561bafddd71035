// Package web serves the start page and its JSON API over HTTP.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/theysh/startpage/internal/app"
	"github.com/theysh/startpage/internal/icon"
)

// ServerParams holds the collaborators of the HTTP layer.
type ServerParams struct {
	Session        *app.Session
	Icons          *icon.Resolver
	AllowedOrigins []string         // CORS origins for /api; empty means same-origin only
	Now            func() time.Time // optional, defaults to time.Now
	ClockFormat    string           // optional
}

// RegisterRoutes builds the router for the start page.
func RegisterRoutes(params ServerParams) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := newHandler(params)

	// Page and plain form endpoints, usable without JavaScript.
	r.Get("/", h.index)
	r.Get("/search", h.search)
	r.Post("/engine", h.selectEngineForm)
	r.Post("/links", h.addLinkForm)
	r.Post("/links/{id}", h.editLinkForm)
	r.Post("/links/{id}/delete", h.deleteLinkForm)
	r.Post("/links/{id}/move", h.moveLinkForm)
	r.Get("/icon/{id}", h.serveIcon)

	// JSON API, open to browser extensions through CORS.
	r.Route("/api", func(api chi.Router) {
		// rs/cors treats an empty origin list as "*", so only install it
		// when origins are configured.
		if len(params.AllowedOrigins) > 0 {
			api.Use(cors.New(cors.Options{
				AllowedOrigins: params.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAge:         86400,
			}).Handler)
		}

		api.Get("/links", h.listLinks)
		api.Post("/links", h.createLink)
		api.Post("/links/reorder", h.reorderLinks)
		api.Put("/links/{id}", h.updateLink)
		api.Delete("/links/{id}", h.deleteLink)

		api.Get("/engines", h.listEngines)
		api.Get("/engine", h.getEngine)
		api.Put("/engine", h.putEngine)
	})

	return r
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("startpage listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type handler struct {
	session     *app.Session
	icons       *icon.Resolver
	now         func() time.Time
	clockFormat string
}

func newHandler(params ServerParams) *handler {
	h := &handler{
		session:     params.Session,
		icons:       params.Icons,
		now:         params.Now,
		clockFormat: params.ClockFormat,
	}
	if h.icons == nil {
		h.icons = icon.NewResolver(icon.ResolverParams{})
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.clockFormat == "" {
		h.clockFormat = "15:04"
	}
	return h
}
