package cmd

import (
	"context"
	"flag"
	"testing"
)

type testConfig struct {
	Tier        string `env:"CMD_TEST_TIER" envDefault:"fast"`
	ReseedBytes uint64 `env:"CMD_TEST_RESEED_BYTES" envDefault:"1024"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_TIER", "secure")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.Tier, "tier", cfg.Tier, "tier")

	if err := ParseArgs(fs, []string{"-tier", "fast"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Tier != "fast" {
		t.Fatalf("expected flag to override env, got %q", cfg.Tier)
	}
	if cfg.ReseedBytes != 1024 {
		t.Fatalf("expected env default threshold, got %d", cfg.ReseedBytes)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected parse config to reject nil target")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryValidatesInput(t *testing.T) {
	t.Setenv("RANDOMIX_OTEL_ENDPOINT", "")
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected empty service name to be rejected")
	}
	if err := RunWithTelemetry(context.Background(), ServiceRandomix, nil); err == nil {
		t.Fatal("expected nil run function to be rejected")
	}
}

func TestRunWithTelemetryRunsFunction(t *testing.T) {
	t.Setenv("RANDOMIX_OTEL_ENDPOINT", "")
	ran := false
	err := RunWithTelemetry(context.Background(), ServiceRandomix, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
	if !ran {
		t.Fatal("run function was not invoked")
	}
}
