package otel

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("LOOTFORGE_OTEL_ENDPOINT", "")
	t.Setenv("LOOTFORGE_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("LOOTFORGE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("LOOTFORGE_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	t.Setenv("LOOTFORGE_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("LOOTFORGE_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsBadSampleRatio(t *testing.T) {
	t.Setenv("LOOTFORGE_OTEL_SAMPLE_RATIO", "half")

	if _, err := Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected error for unparseable sample ratio")
	}
}

func TestSettingsActive(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     bool
	}{
		{name: "empty", settings: Settings{}, want: false},
		{name: "endpoint", settings: Settings{Endpoint: "http://collector:4318"}, want: true},
		{name: "disabled", settings: Settings{Endpoint: "http://collector:4318", Enabled: "FALSE"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Active(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(1).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Fatalf("expected always sampler, got %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.NeverSample().Description() {
		t.Fatalf("expected never sampler, got %s", got)
	}
	if got := sampler(0.5).Description(); got != sdktrace.TraceIDRatioBased(0.5).Description() {
		t.Fatalf("expected ratio sampler, got %s", got)
	}
}
