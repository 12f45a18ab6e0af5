package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStocksService_MetricsThroughPipeline(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if strings.HasPrefix(r.URL.Path, "/v2/last/trade/GOOG") {
			_, _ = w.Write([]byte(`{"status":"OK","results":{"p":121}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","close":100}`))
	}))
	t.Cleanup(upstream.Close)

	svc, cleanup := NewStocksService(testConfig(upstream.URL))
	t.Cleanup(cleanup)

	payload, err := svc.Metrics(context.Background(), []string{"goog"})
	require.NoError(t, err)
	require.Len(t, payload.Metrics, 2)
	assert.True(t, strings.HasPrefix(payload.Metrics[1], "Google"), payload.Metrics[1])
	assert.Contains(t, payload.Metrics[1], "21.00 %")
	assert.Equal(t, int32(3), calls.Load())
}
