package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/locale"
	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/internal/navigation"
	"github.com/AnshRaj112/heritage-backend/internal/services"
	"github.com/AnshRaj112/heritage-backend/pkg/clientip"
)

// submittedParam marks the page a successful form post redirects to.
const submittedParam = "submitted"

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	_, l := h.visitor(w, r)
	h.renderState(w, r, l, navigation.State{Section: navigation.Home}, http.StatusOK, nil)
}

// Section redirects a bare section URL to its Submit page.
func (h *Handler) Section(w http.ResponseWriter, r *http.Request) {
	st := navigation.Parse(chi.URLParam(r, "section"), "")
	http.Redirect(w, r, st.Path(), http.StatusFound)
}

// Page renders a section/action page. Unknown states redirect to their
// fallback.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	section, action := chi.URLParam(r, "section"), chi.URLParam(r, "action")
	if !navigation.Valid(section, action) {
		http.Redirect(w, r, navigation.Parse(section, action).Path(), http.StatusFound)
		return
	}
	_, l := h.visitor(w, r)
	st := navigation.Parse(section, action)
	var f *flash
	if st.Action == navigation.Submit && r.URL.Query().Get(submittedParam) == "1" {
		f = &flash{Kind: "success", Text: locale.Text(l, locale.KeySuccess)}
	}
	h.renderState(w, r, l, st, http.StatusOK, f)
}

// Submit handles the shell's form posts and re-renders the form with the
// outcome.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	st := navigation.Parse(chi.URLParam(r, "section"), chi.URLParam(r, "action"))
	if st.Action != navigation.Submit || st.Path() != r.URL.Path {
		http.NotFound(w, r)
		return
	}
	_, l := h.visitor(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		values map[string]string
		err    error
	)
	switch st.Section {
	case navigation.Stories:
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
		if err = r.ParseForm(); err != nil {
			h.renderState(w, r, l, st, http.StatusBadRequest, &flash{Kind: "error", Text: locale.Text(l, locale.KeyValidationError)})
			return
		}
		values = formValues(r, storyFields)
		in := storyInput(values)
		in.Location = h.opts.Locator.Locate(ctx, clientip.RealClientIP(r))
		_, err = h.opts.Submissions.SubmitStory(ctx, in)
	case navigation.Places:
		var img *services.Image
		values, img, err = parsePlaceForm(w, r, h.opts.MaxUploadBytes)
		if err != nil {
			h.logger.Warn("Rejected place form", zap.Error(err))
			h.renderState(w, r, l, st, http.StatusBadRequest, &flash{Kind: "error", Text: locale.Text(l, locale.KeyValidationError)})
			return
		}
		_, err = h.opts.Submissions.SubmitPlace(ctx, placeInput(values), img)
	}
	h.renderForm(w, r, l, st, values, err)
}

// renderForm shows the outcome of a submission. Success redirects so a reload
// does not submit again; failures re-render with the visitor's input.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, l locale.Locale, st navigation.State, values map[string]string, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, st.Path()+"?"+submittedParam+"=1", http.StatusSeeOther)
	case errors.Is(err, models.ErrValidation):
		h.renderStateWithForm(w, r, l, st, http.StatusBadRequest,
			&flash{Kind: "error", Text: locale.Text(l, locale.KeyValidationError)}, values)
	default:
		h.logger.Error("Submission failed", zap.String("path", st.Path()), zap.Error(err))
		h.renderStateWithForm(w, r, l, st, http.StatusInternalServerError,
			&flash{Kind: "error", Text: locale.Text(l, locale.KeyFailure)}, values)
	}
}

// ToggleLocale flips the session locale and returns to the page the visitor
// was on. The section and action are untouched.
func (h *Handler) ToggleLocale(w http.ResponseWriter, r *http.Request) {
	id, current := h.visitor(w, r)
	if err := h.opts.Sessions.SetLocale(r.Context(), id, locale.Toggle(current)); err != nil {
		h.logger.Warn("Failed to store locale", zap.Error(err))
	}
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

// safeReturn keeps redirects on this site.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/"
	}
	return p
}

func (h *Handler) renderState(w http.ResponseWriter, r *http.Request, l locale.Locale, st navigation.State, status int, f *flash) {
	h.renderStateWithForm(w, r, l, st, status, f, nil)
}

func (h *Handler) renderStateWithForm(w http.ResponseWriter, r *http.Request, l locale.Locale, st navigation.State, status int, f *flash, values map[string]string) {
	data := newPageData(l, st)
	data.Flash = f
	for k, v := range values {
		data.Form[k] = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch pageName(st) {
	case "story_submit":
		data.Location = h.opts.Locator.Locate(ctx, clientip.RealClientIP(r))
	case "story_read":
		stories, err := h.opts.Listings.ListStories(ctx)
		if err != nil {
			h.logger.Error("Failed to list stories", zap.Error(err))
			data.Flash = &flash{Kind: "error", Text: locale.Text(l, locale.KeyFailure)}
			status = http.StatusInternalServerError
		}
		data.Stories = stories
	case "place_read":
		places, err := h.opts.Listings.ListPlaces(ctx)
		if err != nil {
			h.logger.Error("Failed to list place histories", zap.Error(err))
			data.Flash = &flash{Kind: "error", Text: locale.Text(l, locale.KeyFailure)}
			status = http.StatusInternalServerError
		}
		data.Places = places
	}
	h.render(w, pageName(st), status, data)
}

func (h *Handler) render(w http.ResponseWriter, name string, status int, data *pageData) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
