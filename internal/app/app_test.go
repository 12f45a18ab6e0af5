package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/domain/models"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "0", RateLimitPerMinute: 100},
		Polygon: config.PolygonConfig{
			APIKey:  "secret",
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		},
		Stocks: config.StocksConfig{
			Companies: []models.Company{{Name: "Google", Symbol: "GOOG", Color: "#8e5ea2"}},
			Window:    2,
			Location:  time.UTC,
			CellWidth: 22,
			Delimiter: "| ",
			// The live slot is today in UTC; prices do not depend on the date.
			IncludeLiveQuote: true,
		},
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		switch {
		case strings.HasPrefix(r.URL.Path, "/v2/last/trade/"):
			_, _ = w.Write([]byte(`{"status":"OK","results":{"p":110}}`))
		default:
			_, _ = w.Write([]byte(`{"status":"OK","close":100}`))
		}
	}))
	t.Cleanup(upstream.Close)

	router, cleanup, err := InitializeApp(testConfig(upstream.URL))
	require.NoError(t, err)
	require.NotNil(t, router)
	require.NotNil(t, cleanup)
	t.Cleanup(cleanup)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label string    `json:"label"`
			Data  []float64 `json:"data"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Labels, 3)
	assert.Less(t, out.Labels[1], out.Labels[2])
	require.Len(t, out.Datasets, 1)
	assert.Equal(t, "GOOG", out.Datasets[0].Label)
	assert.Equal(t, []float64{100, 100, 110}, out.Datasets[0].Data)
}

func TestInitializeApp_UpstreamDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	router, cleanup, err := InitializeApp(testConfig(upstream.URL))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestInitializeApp_NoCompanies(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Stocks.Companies = nil

	router, cleanup, err := InitializeApp(cfg)
	require.Error(t, err)
	assert.Nil(t, router)
	assert.Nil(t, cleanup)
}

func TestReadiness(t *testing.T) {
	cfg := testConfig("")
	assert.NoError(t, readiness(cfg)())

	cfg.Polygon.APIKey = ""
	assert.Error(t, readiness(cfg)())
}
