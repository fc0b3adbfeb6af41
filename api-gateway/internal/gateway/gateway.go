package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	SiteSvcURL   string
	NotifySvcURL string
	StaticDir    string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// hopHeaders are connection-scoped and never forwarded.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", url).Msg("proxy")

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to create proxy request")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	req.Header = r.Header.Clone()
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	if ip := clientIP(r); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("target", targetURL).Msg("upstream unavailable")
		writeMessage(w, http.StatusBadGateway, "Service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Error().Err(err).Msg("failed to copy response")
	}
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
		return prior + ", " + host
	}
	return host
}

// RouteHandler sends stats calls to notify-svc and every other API call to site-svc.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	switch {
	case strings.HasPrefix(p, "/api/stats/"):
		if g.config.NotifySvcURL == "" {
			writeMessage(w, http.StatusNotFound, "API route not found")
			return
		}
		g.ProxyRequest(w, r, g.config.NotifySvcURL)
	case strings.HasPrefix(p, "/api/"):
		g.ProxyRequest(w, r, g.config.SiteSvcURL)
	case p == "/health/site":
		r.URL.Path = "/health"
		g.ProxyRequest(w, r, g.config.SiteSvcURL)
	default:
		g.ServeStatic(w, r)
	}
}

// ServeStatic serves files from the static dir; unknown paths without an
// extension fall back to index.html so page routes work on reload.
func (g *Gateway) ServeStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	r.URL.Path = clean
	file := filepath.Join(g.config.StaticDir, filepath.FromSlash(clean))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		http.ServeFile(w, r, file)
		return
	}

	if path.Ext(clean) != "" {
		http.NotFound(w, r)
		return
	}
	index := filepath.Join(g.config.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
