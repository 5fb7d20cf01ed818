package apiserver

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/ajans/visit-form/pkg/credentials"
	"github.com/ajans/visit-form/pkg/i18n"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/ajans/visit-form/pkg/version"
	"github.com/ajans/visit-form/pkg/visit"
)

//go:embed templates/*.html
var templateFS embed.FS

// DealerLoader is the reference data the handlers need.
type DealerLoader interface {
	Load(ctx context.Context) (model.Dealers, error)
	Invalidate()
}

type Handler struct {
	svc       *visit.Service
	loader    DealerLoader
	lang      string
	templates *template.Template
}

func NewHandler(svc *visit.Service, loader DealerLoader, lang string) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Handler{
		svc:       svc,
		loader:    loader,
		lang:      lang,
		templates: tmpl,
	}, nil
}

func (h *Handler) printer(r *http.Request) *i18n.Printer {
	return i18n.NewPrinter(r.URL.Query().Get("lang"), h.lang)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, version.Get())
}

// loadDealers returns the dealers or the localized reason the form cannot
// be shown.
func (h *Handler) loadDealers(ctx context.Context, p *i18n.Printer) (model.Dealers, string, bool) {
	d, err := h.loader.Load(ctx)
	if errors.Is(err, credentials.ErrCredentialsUnavailable) {
		return d, p.Sprintf(i18n.NoCredentials), false
	}
	if err != nil {
		return d, p.Sprintf(i18n.DealersLoadFailed, err.Error()), false
	}
	if d.Empty() {
		return d, p.Sprintf(i18n.NoDealers), false
	}
	return d, "", true
}

func (h *Handler) formPage(w http.ResponseWriter, r *http.Request) {
	p := h.printer(r)

	dealers, msg, ok := h.loadDealers(r.Context(), p)
	if !ok {
		h.render(w, http.StatusServiceUnavailable, h.errorPage(p, msg))
		return
	}

	h.render(w, http.StatusOK, h.formPageData(p, dealers, nil, nil))
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	p := h.printer(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	// the same list validates the submission and renders the result
	dealers, msg, ok := h.loadDealers(r.Context(), p)
	if !ok {
		h.render(w, http.StatusServiceUnavailable, h.errorPage(p, msg))
		return
	}

	out := h.svc.Submit(r.Context(), r.PostForm, dealers, p)

	status := http.StatusOK
	values := r.PostForm
	if out.Success {
		values = nil
	} else if len(out.Missing) > 0 || len(out.Invalid) > 0 {
		status = http.StatusUnprocessableEntity
	} else {
		status = http.StatusBadGateway
	}

	h.render(w, status, h.formPageData(p, dealers, values, &out))
}

// loadStatus maps a dealer load failure to an HTTP status.
func loadStatus(err error) int {
	if errors.Is(err, credentials.ErrCredentialsUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func (h *Handler) listDealers(w http.ResponseWriter, r *http.Request) {
	d, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, loadStatus(err), err)
		return
	}

	list := d.List
	if list == nil {
		list = []model.Dealer{}
	}
	writeSuccess(w, model.DealersResponse{Dealers: list})
}

func (h *Handler) refreshDealers(w http.ResponseWriter, r *http.Request) {
	h.loader.Invalidate()
	h.listDealers(w, r)
}

// createVisit accepts a JSON object of field name to value. Values may be
// strings, numbers, booleans (for yes/no questions) or arrays of strings.
func (h *Handler) createVisit(w http.ResponseWriter, r *http.Request) {
	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	dealers, err := h.loader.Load(r.Context())
	if err != nil {
		writeError(w, loadStatus(err), err)
		return
	}

	out := h.svc.Submit(r.Context(), jsonValues(input), dealers, h.printer(r))
	resp := model.SubmitResponse{
		Success: out.Success,
		Message: out.Message,
		Missing: out.Missing,
		Invalid: out.Invalid,
	}

	switch {
	case out.Success:
		writeSuccess(w, resp)
	case len(out.Missing) > 0 || len(out.Invalid) > 0:
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		writeJSON(w, http.StatusBadGateway, resp)
	}
}

func jsonValues(input map[string]interface{}) url.Values {
	values := url.Values{}
	for k, v := range input {
		switch t := v.(type) {
		case nil:
		case bool:
			values.Set(k, yesNo(t))
		case []interface{}:
			for _, item := range t {
				values.Add(k, fmt.Sprint(item))
			}
		default:
			values.Set(k, fmt.Sprint(t))
		}
	}
	return values
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "form.html", data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
