package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/meenmo/fimatrix/internal/logger"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.Setup(&buf, "warning")

	slog.Info("hidden")
	slog.Warn("shown", slog.String("rqID", "abc"))

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "shown" || rec["rqID"] != "abc" || rec["level"] != "WARN" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
