package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-material-widgets/internal/demo"
	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/model"
	"github.com/goliatone/go-material-widgets/pkg/render"
	"github.com/goliatone/go-material-widgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-material-widgets/pkg/store"
)

const (
	staticPrefix  = "/static/"
	showcaseForm  = "showcase"
	modelFormName = "modelform"
)

// server serves the showcase and model form pages.
type server struct {
	logger   *slog.Logger
	settings material.Settings
	pages    *render.Registry
	store    *store.Store
	catalog  *model.Catalog
	metrics  *metrics
}

func newServer(logger *slog.Logger, settings material.Settings, db *store.Store, catalog *model.Catalog) (*server, error) {
	pages, err := pageRenderers(logger, settings)
	if err != nil {
		return nil, err
	}
	return &server{
		logger:   logger,
		settings: settings,
		pages:    pages,
		store:    db,
		catalog:  catalog,
		metrics:  newMetrics(),
	}, nil
}

// pageRenderers registers the material layout first so it is the default.
func pageRenderers(logger *slog.Logger, settings material.Settings) (*render.Registry, error) {
	registry := render.NewRegistry()
	for _, layout := range []vanilla.Layout{vanilla.LayoutMaterial, vanilla.LayoutDefault} {
		renderer, err := vanilla.New(
			vanilla.WithLayout(layout),
			vanilla.WithMaterialOptions(material.WithSettings(settings), material.WithLogger(logger)),
			vanilla.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleShowcase)
	r.Post("/", s.handleShowcase)
	r.Get("/modelform", s.handleModelForm)
	r.Post("/modelform", s.handleModelForm)
	r.Handle(staticPrefix+"*", http.StripPrefix(staticPrefix, http.FileServerFS(material.StaticFS())))
	r.Handle("/metrics", s.metrics.handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(started)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *server) handleShowcase(w http.ResponseWriter, r *http.Request) {
	form, err := demo.NewForm(material.WithSettings(s.settings), material.WithLogger(s.logger))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts := render.RenderOptions{Title: "Material Widgets", Action: "/", Method: http.MethodPost, StaticURL: staticPrefix}
	if r.Method == http.MethodPost {
		if err := parseForm(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Values = r.PostForm
	}
	// The showcase declares Material widgets directly, so only the
	// material layout can draw it.
	s.renderPage(w, r, showcaseForm, string(vanilla.LayoutMaterial), form, opts)
}

func (s *server) handleModelForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	schema, ok := s.catalog.Get(demo.ModelSchema)
	if !ok {
		s.fail(w, r, fmt.Errorf("schema %q missing", demo.ModelSchema))
		return
	}
	form, err := forms.NewModelForm(ctx, schema, forms.WithChoiceSource(s.store), forms.WithSaver(s.store))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := render.RenderOptions{Title: "Material Model Form", Action: r.URL.RequestURI(), Method: http.MethodPost, StaticURL: staticPrefix}
	if id := r.URL.Query().Get("saved"); id != "" {
		opts.Title = "Saved record #" + id
	}
	if r.Method == http.MethodPost {
		if err := parseForm(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form.Bind(r.PostForm, nil)
		valid := form.IsValid()
		s.metrics.observeSubmission(modelFormName, valid)
		if valid {
			id, err := form.Save(ctx)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			s.metrics.saved.Inc()
			http.Redirect(w, r, "/modelform?saved="+strconv.FormatInt(id, 10), http.StatusSeeOther)
			return
		}
		opts.Values = r.PostForm
	}
	s.renderPage(w, r, modelFormName, r.URL.Query().Get("renderer"), form.Form, opts)
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, name, rendererName string, form *forms.Form, opts render.RenderOptions) {
	started := time.Now()
	renderer, err := s.pages.Resolve(rendererName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	page, err := renderer.Render(r.Context(), form, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if r.Method == http.MethodPost && name == showcaseForm {
		s.metrics.observeSubmission(name, form.IsValid())
	}
	s.metrics.observeRender(name, renderer.Name(), started)

	w.Header().Set("Content-Type", renderer.ContentType())
	if form.IsBound() && !form.IsValid() {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	_, _ = w.Write(page)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return r.ParseForm()
}
