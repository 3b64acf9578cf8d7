package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWithLoadID(t *testing.T) {
	ctx := WithLoadID(context.Background(), "load-123")

	lc := GetContext(ctx)
	if lc.LoadID != "load-123" {
		t.Errorf("expected load-123, got %s", lc.LoadID)
	}
}

func TestContextValuesAccumulate(t *testing.T) {
	ctx := context.Background()
	ctx = WithEnvironment(ctx, "production")
	ctx = WithCommand(ctx, "export")
	ctx = WithConfigPath(ctx, "siteconf.yaml")

	lc := GetContext(ctx)
	if lc.Environment != "production" || lc.Command != "export" || lc.ConfigPath != "siteconf.yaml" {
		t.Errorf("unexpected log context: %+v", lc)
	}
	if !HasContextValue(ctx, "environment") || HasContextValue(ctx, "load_id") {
		t.Errorf("HasContextValue mismatch for %+v", lc)
	}
	if HasContextValue(ctx, "unknown") {
		t.Errorf("unknown field should not be reported")
	}
}

func TestNewLoadIDIsUUID(t *testing.T) {
	id := NewLoadID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("load id %q is not a UUID: %v", id, err)
	}
	if id == NewLoadID() {
		t.Fatalf("load ids should be unique")
	}
}

func TestContextAttrsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	ctx := WithEnvironment(WithLoadID(context.Background(), "abc"), "development")
	InfoContext(ctx, "configuration loaded", slog.Int("issues", 0))
	DebugContext(ctx, "detail")

	out := buf.String()
	for _, want := range []string{"load_id=abc", "environment=development", "issues=0", "msg=detail"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output:\n%s", want, out)
		}
	}
}
