package randomix

import (
	"bytes"
	"context"
	"flag"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/louisbranch/randomix/internal/engine"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("randomix", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"uuid"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Secure {
		t.Fatal("expected fast tier by default")
	}
	if cfg.Repeat != 1 {
		t.Fatalf("expected repeat 1, got %d", cfg.Repeat)
	}
	if len(cfg.Args) != 1 || cfg.Args[0] != "uuid" {
		t.Fatalf("expected command args, got %v", cfg.Args)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("randomix", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-secure", "-n", "3", "token", "16"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Secure {
		t.Fatal("expected secure tier")
	}
	if cfg.Repeat != 3 {
		t.Fatalf("expected repeat 3, got %d", cfg.Repeat)
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "token" {
		t.Fatalf("expected command args, got %v", cfg.Args)
	}
}

func TestParseConfigEnvSeed(t *testing.T) {
	t.Setenv("RANDOMIX_FAST_SEED", "12345")

	fs := flag.NewFlagSet("randomix", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"uuid"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.FastSeed != 12345 {
		t.Fatalf("expected env seed, got %d", cfg.FastSeed)
	}
}

func TestRunRequiresCommand(t *testing.T) {
	t.Setenv("RANDOMIX_OTEL_ENDPOINT", "")
	if err := Run(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing command to be rejected")
	}
}

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(engine.Config{FastSeed: 42, SecureSeed: 42})
	t.Cleanup(eng.Close)
	return eng
}

func TestExecuteUUID(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "uuid", nil); err != nil {
		t.Fatalf("uuid: %v", err)
	}
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	got := strings.TrimSpace(buf.String())
	if !pattern.MatchString(got) {
		t.Fatalf("expected version 4 UUID, got %q", got)
	}
}

func TestExecuteToken(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierSecure, "token", []string{"16"}); err != nil {
		t.Fatalf("token: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
	if !regexp.MustCompile(`^[0-9a-f]+$`).MatchString(got) {
		t.Fatalf("expected hex token, got %q", got)
	}
}

func TestExecuteDice(t *testing.T) {
	eng := testEngine(t)
	for i := 0; i < 100; i++ {
		var buf bytes.Buffer
		if err := executeOnce(&buf, eng, engine.TierFast, "dice", []string{"3d6"}); err != nil {
			t.Fatalf("dice: %v", err)
		}
		total, err := strconv.Atoi(strings.TrimSpace(buf.String()))
		if err != nil {
			t.Fatalf("parse dice output: %v", err)
		}
		if total < 3 || total > 18 {
			t.Fatalf("3d6 total %d out of range", total)
		}
	}
}

func TestExecuteDiceRejectsBadSpec(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "dice", []string{"banana"}); err == nil {
		t.Fatal("expected bad dice spec to be rejected")
	}
}

func TestExecuteRange(t *testing.T) {
	eng := testEngine(t)
	for i := 0; i < 100; i++ {
		var buf bytes.Buffer
		if err := executeOnce(&buf, eng, engine.TierFast, "range", []string{"-5", "5"}); err != nil {
			t.Fatalf("range: %v", err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(buf.String()))
		if err != nil {
			t.Fatalf("parse range output: %v", err)
		}
		if v < -5 || v > 5 {
			t.Fatalf("range value %d out of [-5, 5]", v)
		}
	}
}

func TestExecuteFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "format", []string{"XX-99"}); err != nil {
		t.Fatalf("format: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if !regexp.MustCompile(`^[A-Z]{2}-[0-9]{2}$`).MatchString(got) {
		t.Fatalf("expected pattern output, got %q", got)
	}
}

func TestExecuteShufflePreservesItems(t *testing.T) {
	items := []string{"alpha", "beta", "gamma", "delta"}
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "shuffle", items); err != nil {
		t.Fatalf("shuffle: %v", err)
	}
	got := strings.Fields(strings.TrimSpace(buf.String()))
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	want := append([]string(nil), items...)
	sort.Strings(got)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("shuffle changed items: got %v", got)
		}
	}
}

func TestExecuteBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "bytes", []string{"8"}); err != nil {
		t.Fatalf("bytes: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters for 8 bytes, got %q", got)
	}
}

func TestExecutePointShapes(t *testing.T) {
	eng := testEngine(t)
	cases := []struct {
		params []string
		coords int
	}{
		{[]string{"circle", "2"}, 2},
		{[]string{"ring", "1", "2"}, 2},
		{[]string{"sphere", "1"}, 3},
		{[]string{"surface", "1"}, 3},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := executeOnce(&buf, eng, engine.TierFast, "point", tc.params); err != nil {
			t.Fatalf("point %v: %v", tc.params, err)
		}
		fields := strings.Fields(strings.TrimSpace(buf.String()))
		if len(fields) != tc.coords {
			t.Fatalf("point %v: expected %d coordinates, got %v", tc.params, tc.coords, fields)
		}
		for _, f := range fields {
			if _, err := strconv.ParseFloat(f, 32); err != nil {
				t.Fatalf("point %v: parse coordinate %q: %v", tc.params, f, err)
			}
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := executeOnce(&buf, testEngine(t), engine.TierFast, "levitate", nil); err == nil {
		t.Fatal("expected unknown command to be rejected")
	}
}

func TestParseDiceSpec(t *testing.T) {
	cases := []struct {
		spec         string
		count, sides int
		wantErr      bool
	}{
		{"3d6", 3, 6, false},
		{"d20", 1, 20, false},
		{"1D8", 1, 8, false},
		{"banana", 0, 0, true},
		{"3dsix", 0, 0, true},
	}
	for _, tc := range cases {
		count, sides, err := parseDiceSpec(tc.spec)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("spec %q: expected error", tc.spec)
			}
			continue
		}
		if err != nil {
			t.Fatalf("spec %q: %v", tc.spec, err)
		}
		if count != tc.count || sides != tc.sides {
			t.Fatalf("spec %q: got %dd%d", tc.spec, count, sides)
		}
	}
}
