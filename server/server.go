// Package server exposes the launch dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/render"
	"github.com/spektr-org/launchdash/schema"
)

//go:embed dashboard.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(dashboardFS, "dashboard.html"))

// WebServer serves the dashboard page, its JSON API and chart images.
type WebServer struct {
	address         string
	shutdownTimeout time.Duration
	controller      *engine.Controller
	charts          *render.Latest
	schema          schema.Config
	logger          *slog.Logger
	server          *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address         string
	ShutdownTimeout time.Duration

	// Controller receives input events; its renderer must be Charts.
	Controller *engine.Controller
	Charts     *render.Latest

	Schema schema.Config
	Logger *slog.Logger
}

// NewWebServer creates a web server. Nothing listens until Start.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:         config.Address,
		shutdownTimeout: config.ShutdownTimeout,
		controller:      config.Controller,
		charts:          config.Charts,
		schema:          config.Schema,
		logger:          config.Logger,
	}
	if ws.logger == nil {
		ws.logger = slog.Default()
	}
	if ws.shutdownTimeout <= 0 {
		ws.shutdownTimeout = 5 * time.Second
	}
	ws.server = &http.Server{
		Addr:              ws.address,
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ws
}

// Handler returns the routed handler, for tests and embedding.
func (ws *WebServer) Handler() http.Handler {
	return ws.logRequests(ws.setupRoutes())
}

// Start listens until ctx is cancelled, then shuts down gracefully.
// It returns the listener's error if serving fails before cancellation.
func (ws *WebServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		ws.logger.Info("starting HTTP server", "addr", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", ws.address, err)
		}
		return nil
	case <-ctx.Done():
	}

	ws.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ws.shutdownTimeout)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		ws.logger.Warn("graceful shutdown failed", "error", err)
		if err := ws.server.Close(); err != nil {
			return fmt.Errorf("force close: %w", err)
		}
	}
	ws.logger.Info("HTTP server stopped")
	return nil
}

func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleDashboard)
	mux.HandleFunc("/api/state", ws.handleState)
	mux.HandleFunc("/api/sites", ws.handleSites)
	mux.HandleFunc("/api/summary", ws.handleSummary)
	mux.HandleFunc("/api/charts/{kind}", ws.handleChart)
	mux.HandleFunc("/api/charts/{kind}/svg", ws.handleChartImage)
	mux.HandleFunc("/api/site", ws.handleSite)
	mux.HandleFunc("/api/range", ws.handleRange)

	return mux
}

func (ws *WebServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		ws.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// ============================================================================
// RESPONSE HELPERS
// ============================================================================

func (ws *WebServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ws.logger.Warn("write response", "error", err)
	}
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	ws.writeJSON(w, status, map[string]string{"error": msg})
}

// allow rejects any method but the given one with a JSON 405.
func (ws *WebServer) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// chartFor returns the newest spec of a chart, painting both charts first if
// nothing has been emitted yet.
func (ws *WebServer) chartFor(kind engine.ChartKind) engine.ChartSpec {
	if spec, ok := ws.charts.Get(kind); ok {
		return spec
	}
	if err := ws.controller.Refresh(); err != nil {
		ws.logger.Warn("refresh", "error", err)
	}
	spec, _ := ws.charts.Get(kind)
	return spec
}

// ============================================================================
// HANDLERS
// ============================================================================

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ws.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"service":         "launchdash",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"dropped_updates": ws.charts.Dropped(),
	})
}

func (ws *WebServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		ws.writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	if !ws.allow(w, r, http.MethodGet) {
		return
	}

	state := ws.controller.State()
	data := struct {
		Title   string
		Sites   []siteOption
		Slider  schema.SliderBounds
		Current engine.FilterState
	}{
		Title:   ws.schema.Name,
		Sites:   ws.siteOptions(),
		Slider:  ws.schema.Slider,
		Current: state,
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type stateResponse struct {
	Site  string     `json:"site"`
	Range [2]float64 `json:"range"`
	Full  [2]float64 `json:"full"`
}

func (ws *WebServer) stateBody() stateResponse {
	s := ws.controller.State()
	full := ws.controller.Pipeline().Full()
	return stateResponse{
		Site:  s.Site,
		Range: [2]float64{s.Payload.Min, s.Payload.Max},
		Full:  [2]float64{full.Min, full.Max},
	}
}

func (ws *WebServer) handleState(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodGet) {
		return
	}
	ws.writeJSON(w, http.StatusOK, ws.stateBody())
}

type siteOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

func (ws *WebServer) siteOptions() []siteOption {
	sites := ws.controller.Pipeline().Sites()
	current := ws.controller.State().Site
	opts := []siteOption{{Value: engine.AllSites, Label: sites.Label(engine.AllSites)}}
	for _, v := range sites.Values() {
		opts = append(opts, siteOption{Value: v, Label: sites.Label(v)})
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == current
	}
	return opts
}

func (ws *WebServer) handleSites(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodGet) {
		return
	}
	ws.writeJSON(w, http.StatusOK, ws.siteOptions())
}

func (ws *WebServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodGet) {
		return
	}
	p := ws.controller.Pipeline()
	ws.writeJSON(w, http.StatusOK, map[string]any{
		"total": engine.BuildSummary(p.View()),
		"sites": engine.BuildSiteSummaries(p.View(), p.Sites()),
	})
}

func (ws *WebServer) chartKind(w http.ResponseWriter, r *http.Request) (engine.ChartKind, bool) {
	kind, ok := engine.ParseKind(r.PathValue("kind"))
	if !ok {
		ws.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", r.PathValue("kind")))
	}
	return kind, ok
}

func (ws *WebServer) handleChart(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodGet) {
		return
	}
	kind, ok := ws.chartKind(w, r)
	if !ok {
		return
	}
	spec := ws.chartFor(kind)
	ws.writeJSON(w, http.StatusOK, map[string]any{
		"spec":  spec,
		"chart": engine.BuildChart(spec),
		"table": engine.BuildTable(spec),
	})
}

// handleChartImage draws a chart as SVG, or PNG with ?format=png.
func (ws *WebServer) handleChartImage(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodGet) {
		return
	}
	kind, ok := ws.chartKind(w, r)
	if !ok {
		return
	}
	format := render.SVG
	if r.URL.Query().Get("format") == string(render.PNG) {
		format = render.PNG
	}

	var buf bytes.Buffer
	if err := render.Draw(&buf, ws.chartFor(kind), format); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("draw chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (ws *WebServer) handleSite(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodPost) {
		return
	}
	var req struct {
		Site *string `json:"site"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Site == nil {
		ws.writeJSONError(w, http.StatusBadRequest, "expected {\"site\": \"...\"}")
		return
	}
	if err := ws.controller.OnSiteChanged(*req.Site); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws.writeJSON(w, http.StatusOK, ws.stateBody())
}

func (ws *WebServer) handleRange(w http.ResponseWriter, r *http.Request) {
	if !ws.allow(w, r, http.MethodPost) {
		return
	}
	// Pointers tell a JSON null apart from 0.
	var req struct {
		Range []*float64 `json:"range"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Range) != 2 {
		ws.writeJSONError(w, http.StatusBadRequest, "expected {\"range\": [min, max]}")
		return
	}
	if req.Range[0] == nil || req.Range[1] == nil {
		ws.writeJSONError(w, http.StatusBadRequest, "range bounds must be numbers")
		return
	}
	if err := ws.controller.OnRangeChanged(engine.PayloadRange{Min: *req.Range[0], Max: *req.Range[1]}); err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws.writeJSON(w, http.StatusOK, ws.stateBody())
}
