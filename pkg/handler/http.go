package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	httputils "github.com/foomo/keel/utils/net/http"
	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/metrics"
	"github.com/foomo/sitemapserver/pkg/render"
	"github.com/foomo/sitemapserver/pkg/repo"
	"github.com/foomo/sitemapserver/pkg/sitemap"
	"github.com/foomo/sitemapserver/responses"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="canonical" href="{{.URL}}">
</head>
<body>
<article>
{{.Body}}</article>
</body>
</html>
`))

type (
	HTTP struct {
		l        *zap.Logger
		basePath string
		repo     *repo.Repo
		builder  *sitemap.Builder
		renderer *render.Renderer
	}
	HTTPOption func(*HTTP)
	page       struct {
		Title string
		URL   string
		Body  template.HTML
	}
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewHTTP returns a shiny new web server
func NewHTTP(l *zap.Logger, repo *repo.Repo, builder *sitemap.Builder, renderer *render.Renderer, opts ...HTTPOption) http.Handler {
	inst := &HTTP{
		l:        l.Named("http"),
		basePath: "/sitemapserver",
		repo:     repo,
		builder:  builder,
		renderer: renderer,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

// WithBasePath path prefix of the json api
func WithBasePath(v string) HTTPOption {
	return func(o *HTTP) {
		if trimmed := strings.Trim(v, "/"); trimmed != "" {
			o.basePath = "/" + trimmed
		} else {
			o.basePath = ""
		}
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/"+string(RouteSitemap):
		h.measure(RouteSitemap, w, r, h.serveSitemap)
	case r.URL.Path == "/"+string(RouteRobots):
		h.measure(RouteRobots, w, r, h.serveRobots)
	case strings.HasPrefix(r.URL.Path, "/"+string(RouteContent)+"/"):
		h.measure(RouteContent, w, r, h.serveContent)
	case strings.HasPrefix(r.URL.Path, h.basePath+"/"):
		route := Route(strings.TrimPrefix(r.URL.Path, h.basePath+"/"))
		h.measure(route.label(), w, r, func(w http.ResponseWriter, r *http.Request) error {
			return h.serveAPI(route, w, r)
		})
	default:
		httputils.ServerError(h.l, w, r, http.StatusNotFound, errors.New("not found"))
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) measure(route Route, w http.ResponseWriter, r *http.Request, fn func(w http.ResponseWriter, r *http.Request) error) {
	start := time.Now()

	result := "success"
	if err := fn(w, r); err != nil {
		result = "error"
	}

	metrics.ServiceRequestCounter.WithLabelValues(string(route), result).Inc()
	metrics.ServiceRequestDuration.WithLabelValues(string(route), result).Observe(time.Since(start).Seconds())
}

func (h *HTTP) serveSitemap(w http.ResponseWriter, r *http.Request) error {
	if err := h.allow(w, r, http.MethodGet); err != nil {
		return err
	}
	if !h.repo.Loaded() {
		err := errors.New("records not loaded yet")
		httputils.ServerError(h.l, w, r, http.StatusServiceUnavailable, err)
		return err
	}

	entries, err := h.builder.Build(r.Context())
	if err != nil {
		httputils.ServerError(h.l, w, r, http.StatusInternalServerError, err)
		return err
	}
	var buf bytes.Buffer
	if err := sitemap.EncodeXML(&buf, entries); err != nil {
		httputils.ServerError(h.l, w, r, http.StatusInternalServerError, err)
		return err
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (h *HTTP) serveRobots(w http.ResponseWriter, r *http.Request) error {
	if err := h.allow(w, r, http.MethodGet); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	return h.builder.WriteRobots(w)
}

func (h *HTTP) serveContent(w http.ResponseWriter, r *http.Request) error {
	if err := h.allow(w, r, http.MethodGet); err != nil {
		return err
	}

	if !h.repo.Loaded() {
		err := errors.New("records not loaded yet")
		httputils.ServerError(h.l, w, r, http.StatusServiceUnavailable, err)
		return err
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/"+string(RouteContent)), content.PathSeparator)
	record, ok := h.repo.Record(path)
	if !ok || !record.Published() {
		err := errors.Errorf("content not found: %q", path)
		httputils.ServerError(h.l, w, r, http.StatusNotFound, err)
		return err
	}

	body, err := h.renderer.RenderString(record.Body)
	if err != nil {
		httputils.ServerError(h.l, w, r, http.StatusInternalServerError, err)
		return err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page{
		Title: record.Title,
		URL:   content.NewSitemapEntry(h.builder.Origin(), record.Path, "").URL,
		Body:  template.HTML(body), //nolint:gosec
	}); err != nil {
		httputils.ServerError(h.l, w, r, http.StatusInternalServerError, errors.Wrap(err, "failed to execute page template"))
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if modified := record.Modified(); modified != "" {
		w.Header().Set("X-Last-Modified", modified)
	}
	_, _ = w.Write(buf.Bytes())
	return nil
}

func (h *HTTP) serveAPI(route Route, w http.ResponseWriter, r *http.Request) error {
	switch route {
	case RouteEntries:
		if err := h.allow(w, r, http.MethodGet); err != nil {
			return err
		}
		entries, err := h.builder.Build(r.Context())
		if errors.Is(err, repo.ErrNotLoaded) {
			return h.reply(w, http.StatusServiceUnavailable, responses.NewError(http.StatusServiceUnavailable, 3, err.Error()))
		} else if err != nil {
			h.l.Error("an API error occurred", zap.Error(err))
			return h.reply(w, http.StatusInternalServerError, responses.NewError(http.StatusInternalServerError, 3, "internal error "+err.Error()))
		}
		return h.reply(w, http.StatusOK, entries)
	case RouteRecords:
		if err := h.allow(w, r, http.MethodGet); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := h.repo.WriteRecordsBytes(r.Context(), &buf); err != nil {
			return h.reply(w, http.StatusServiceUnavailable, responses.NewError(http.StatusServiceUnavailable, 3, err.Error()))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(buf.Bytes())
		return nil
	case RouteUpdate:
		if err := h.allow(w, r, http.MethodPost); err != nil {
			return err
		}
		update := h.repo.Update(r.Context())
		if !update.Success {
			// still a valid reply, the client decides what to do with it
			_ = h.reply(w, http.StatusOK, update)
			return errors.New(update.ErrorMessage)
		}
		return h.reply(w, http.StatusOK, update)
	default:
		err := responses.NewError(http.StatusNotFound, 1, "unknown route: "+string(route))
		_ = h.reply(w, http.StatusNotFound, err)
		return err
	}
}

func (h *HTTP) allow(w http.ResponseWriter, r *http.Request, method string) error {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return nil
	}
	err := errors.New("method not allowed")
	w.Header().Set("Allow", method)
	httputils.ServerError(h.l, w, r, http.StatusMethodNotAllowed, err)
	return err
}

// reply encodes the value as {"reply": <v>}
func (h *HTTP) reply(w http.ResponseWriter, status int, v interface{}) error {
	data, err := json.Marshal(map[string]interface{}{
		"reply": v,
	})
	if err != nil {
		h.l.Error("could not encode reply", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
	return nil
}
