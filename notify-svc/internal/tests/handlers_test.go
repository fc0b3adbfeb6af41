package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "flavor-heaven/notify-svc/internal/api/http"
	"flavor-heaven/notify-svc/internal/mocks"
	"flavor-heaven/notify-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestStatsHandlers(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		setup    func(*mocks.StatsReader)
		wantCode int
		wantBody string
	}{
		{
			name: "daily for a date",
			path: "/api/stats/daily/2026-10-18",
			setup: func(s *mocks.StatsReader) {
				s.On("Daily", mock.Anything, "2026-10-18").Return(storage.DailyStats{Day: "2026-10-18", Orders: 3, Revenue: 61.5}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: `"orders":3`,
		},
		{
			name:     "daily rejects a bad date",
			path:     "/api/stats/daily/18-10-2026",
			setup:    func(*mocks.StatsReader) {},
			wantCode: http.StatusBadRequest,
			wantBody: "YYYY-MM-DD",
		},
		{
			name: "daily store failure",
			path: "/api/stats/daily/2026-10-18",
			setup: func(s *mocks.StatsReader) {
				s.On("Daily", mock.Anything, "2026-10-18").Return(storage.DailyStats{}, errors.New("redis down")).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: "Something went wrong!",
		},
		{
			name: "top items with limit",
			path: "/api/stats/top-items?date=2026-10-18&limit=2",
			setup: func(s *mocks.StatsReader) {
				s.On("TopItems", mock.Anything, "2026-10-18", 2).Return([]storage.ItemCount{{ItemID: "fries-1", Quantity: 5}}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: `"itemId":"fries-1"`,
		},
		{
			name: "top items empty day",
			path: "/api/stats/top-items?date=2026-10-18",
			setup: func(s *mocks.StatsReader) {
				s.On("TopItems", mock.Anything, "2026-10-18", 10).Return(nil, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: "[]",
		},
		{
			name:     "top items bad limit",
			path:     "/api/stats/top-items?limit=zero",
			setup:    func(*mocks.StatsReader) {},
			wantCode: http.StatusBadRequest,
			wantBody: "limit must be a positive integer",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			stats := mocks.NewStatsReader(t)
			testCase.setup(stats)
			router := httpapi.NewRouter(httpapi.NewHandler(stats))

			rr := serve(router, testCase.path)

			assert.Equal(t, testCase.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.wantBody)
		})
	}
}

func TestStatsTodayDefault(t *testing.T) {
	stats := mocks.NewStatsReader(t)
	stats.On("Daily", mock.Anything, mock.AnythingOfType("string")).Return(storage.DailyStats{}, nil).Once()

	rr := serve(httpapi.NewRouter(httpapi.NewHandler(stats)), "/api/stats/daily")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStatsWithoutRedis(t *testing.T) {
	router := httpapi.NewRouter(httpapi.NewHandler(nil))

	rr := serve(router, "/api/stats/daily/2026-10-18")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = serve(router, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, false, body["stats"])
}
