package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flavor-heaven/api-gateway/internal/gateway"
	"flavor-heaven/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Proxies(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantURL    string
		respStatus int
	}{
		{"menu goes to site", http.MethodGet, "/api/menu?category=desserts&sort=price-asc", "http://site-svc/api/menu?category=desserts&sort=price-asc", http.StatusOK},
		{"cart goes to site", http.MethodPost, "/api/cart/items", "http://site-svc/api/cart/items", http.StatusCreated},
		{"stats go to notify", http.MethodGet, "/api/stats/daily/2026-10-18", "http://notify-svc/api/stats/daily/2026-10-18", http.StatusOK},
		{"site health", http.MethodGet, "/health/site", "http://site-svc/health", http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				SiteSvcURL:   "http://site-svc/",
				NotifySvcURL: "http://notify-svc",
			}, client)

			client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.URL.String() == testCase.wantURL &&
					req.Method == testCase.method &&
					req.Header.Get("X-Session-ID") == "abc" &&
					req.Header.Get("Connection") == "" &&
					req.Header.Get("X-Forwarded-For") != ""
			})).Return(jsonResponse(testCase.respStatus, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			req.Header.Set("X-Session-ID", "abc")
			req.Header.Set("Connection", "keep-alive")
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, testCase.respStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		})
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	client := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{SiteSvcURL: "http://invalid"}, client)

	client.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Service unavailable")
}

func TestGateway_StatsWithoutNotify(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{SiteSvcURL: "http://site-svc"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/top-items", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_ServeStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Flavor Heaven</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body{}"), 0o644))

	gw := gateway.NewGateway(gateway.Config{StaticDir: dir}, nil)
	router := gw.SetupRoutes()

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"root serves index", http.MethodGet, "/", http.StatusOK, "Flavor Heaven"},
		{"asset", http.MethodGet, "/css/style.css", http.StatusOK, "body{}"},
		{"page route falls back to index", http.MethodGet, "/checkout", http.StatusOK, "Flavor Heaven"},
		{"missing asset", http.MethodGet, "/js/missing.js", http.StatusNotFound, ""},
		{"post to page", http.MethodPost, "/checkout", http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, testCase.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.wantBody)
		})
	}

	t.Run("traversal stays inside dir", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = "/../../etc/passwd"
		rr := httptest.NewRecorder()

		gw.ServeStatic(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Flavor Heaven")
	})
}
