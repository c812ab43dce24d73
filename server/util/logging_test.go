package util

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Printf(format string, v ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, v...))
}

func TestRequestLogger_Levels(t *testing.T) {
	logger := &captureLogger{}
	r := httptest.NewRequest("POST", "/api/vlogs", nil)

	rl := WithRequest(logger, r)
	rl.Infof("accepted %s", "upload")
	rl.Errorf("store failed: %v", "timeout")

	if len(logger.lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(logger.lines))
	}
	if !strings.Contains(logger.lines[0], "INFO [POST /api/vlogs]: accepted upload") {
		t.Fatalf("unexpected info line %q", logger.lines[0])
	}
	if !strings.Contains(logger.lines[1], "ERROR [POST /api/vlogs]: store failed: timeout") {
		t.Fatalf("unexpected error line %q", logger.lines[1])
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := &captureLogger{}
	r := httptest.NewRequest("GET", "/api/vlogs", nil)
	rl := WithRequest(logger, r)

	ctx := ContextWithLogger(context.Background(), rl)
	if got := FromContext(ctx); got != rl {
		t.Fatalf("expected logger from context, got %v", got)
	}

	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for empty context, got %v", got)
	}
	if got := FromContext(nil); got != nil {
		t.Fatalf("expected nil for nil context, got %v", got)
	}
}
