package site

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/portfolio/internal/services/site/httpx"
	"github.com/louisbranch/portfolio/internal/services/site/routepath"
	"github.com/louisbranch/portfolio/internal/theme"
)

const maxThemeBody = 1 << 10

type themeState struct {
	Preference string `json:"preference"`
	Dark       bool   `json:"dark"`
}

type themeRequest struct {
	Preference string `json:"preference"`
}

type errorBody struct {
	Error string `json:"error"`
}

// withController runs fn against a request-scoped theme controller and
// reports whether fn ran and succeeded.
func (h *handler) withController(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, c *theme.Controller) error) bool {
	ctx, span := tracer.Start(r.Context(), op, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	store, err := h.stores.ForRequest(w, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "preference store")
		log.Printf("site: bind preference store: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
		return false
	}
	ambient, _ := h.ambientFor(w, r)
	controller := theme.NewController(ctx, store, ambient, nil)
	defer controller.Close()
	controller.Ready()

	if err := fn(ctx, controller); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
		return false
	}
	span.SetAttributes(attribute.String("site.theme", controller.Get().String()))
	return true
}

func (h *handler) getTheme(w http.ResponseWriter, r *http.Request) {
	h.withController(w, r, "site.theme.get", func(ctx context.Context, c *theme.Controller) error {
		writeJSON(w, http.StatusOK, stateOf(c))
		return nil
	})
}

func (h *handler) putTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxThemeBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}
	preference, ok := theme.ParsePreference(req.Preference)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: theme.ErrInvalidPreference.Error()})
		return
	}
	h.withController(w, r, "site.theme.put", func(ctx context.Context, c *theme.Controller) error {
		err := c.Set(ctx, preference)
		return respondThemeChange(w, c, err)
	})
}

func (h *handler) toggleThemeAPI(w http.ResponseWriter, r *http.Request) {
	h.withController(w, r, "site.theme.toggle", func(ctx context.Context, c *theme.Controller) error {
		_, err := c.Toggle(ctx)
		return respondThemeChange(w, c, err)
	})
}

// toggleThemeForm toggles the theme and returns the visitor to the page
// they came from.
func (h *handler) toggleThemeForm(w http.ResponseWriter, r *http.Request) {
	target := httpx.LocalReferer(r, routepath.Root)
	if err := r.ParseForm(); err == nil {
		if local, ok := httpx.LocalPath(r.PostForm.Get("return_to")); ok {
			target = local
		}
	}
	ok := h.withController(w, r, "site.theme.toggle_form", func(ctx context.Context, c *theme.Controller) error {
		if _, err := c.Toggle(ctx); err != nil {
			log.Printf("site: toggle theme: %v", err)
		}
		return nil
	})
	if !ok {
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// respondThemeChange writes the new state. A storage failure still reports
// the applied state alongside the error.
func respondThemeChange(w http.ResponseWriter, c *theme.Controller, err error) error {
	if err == nil {
		writeJSON(w, http.StatusOK, stateOf(c))
		return nil
	}
	if errors.Is(err, theme.ErrInvalidPreference) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return err
	}
	log.Printf("site: persist theme: %v", err)
	writeJSON(w, http.StatusInternalServerError, struct {
		themeState
		Error string `json:"error"`
	}{themeState: stateOf(c), Error: "theme preference was not saved"})
	return err
}

func stateOf(c *theme.Controller) themeState {
	return themeState{Preference: c.Get().String(), Dark: c.IsDark()}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("site: write json: %v", err)
	}
}
