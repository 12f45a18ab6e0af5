package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/domain/models"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

type stubService struct {
	rows []string
	err  error
}

func (s stubService) Chart(context.Context, []string) (dto.ChartPayload, error) {
	return dto.ChartPayload{}, s.err
}

func (s stubService) Metrics(context.Context, []string) (dto.MetricsPayload, error) {
	return dto.MetricsPayload{Metrics: s.rows}, s.err
}

func TestPrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	svc := stubService{rows: []string{"Company | Total return", "Google  | 21.00 %"}}

	if err := printMetrics(context.Background(), &buf, svc, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "Company | Total return\nGoogle  | 21.00 %\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestPrintMetrics_Error(t *testing.T) {
	var buf bytes.Buffer
	svc := stubService{err: &models.UnknownTickerError{Names: []string{"Initech"}}}

	err := printMetrics(context.Background(), &buf, svc, []string{"Initech"})
	var ute *models.UnknownTickerError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnknownTickerError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be printed on failure, got %q", buf.String())
	}
}
