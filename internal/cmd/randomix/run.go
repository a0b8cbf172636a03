package randomix

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/randomix/internal/engine"
	entrypoint "github.com/louisbranch/randomix/internal/platform/cmd"
)

const tracerName = "github.com/louisbranch/randomix/internal/cmd/randomix"

// Run executes one engine command described by cfg.
func Run(ctx context.Context, cfg Config) error {
	if len(cfg.Args) == 0 {
		return fmt.Errorf("usage: randomix [flags] <uuid|token|dice|range|format|shuffle|bytes|point> [args]")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRandomix, func(ctx context.Context) error {
		eng := engine.New(engine.Config{
			FastSeed:    cfg.FastSeed,
			SecureSeed:  cfg.SecureSeed,
			ReseedBytes: cfg.ReseedBytes,
		})
		defer eng.Close()
		return execute(ctx, eng, cfg)
	})
}

func execute(ctx context.Context, eng *engine.Engine, cfg Config) error {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	tier := engine.TierFast
	if cfg.Secure {
		tier = engine.TierSecure
	}
	repeat := cfg.Repeat
	if repeat < 1 {
		repeat = 1
	}

	command, params := cfg.Args[0], cfg.Args[1:]
	_, span := otel.Tracer(tracerName).Start(ctx, "randomix."+command)
	span.SetAttributes(attribute.String("tier", tier.String()))
	defer span.End()

	for i := 0; i < repeat; i++ {
		if err := executeOnce(out, eng, tier, command, params); err != nil {
			return err
		}
	}
	return nil
}

func executeOnce(out io.Writer, eng *engine.Engine, tier engine.Tier, command string, params []string) error {
	switch command {
	case "uuid":
		fmt.Fprintln(out, eng.UUID(tier))
		return nil

	case "token":
		n, err := intParam(params, 0, 32)
		if err != nil {
			return err
		}
		token, err := eng.Token(tier, n)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)
		return nil

	case "dice":
		if len(params) != 1 {
			return fmt.Errorf("usage: dice <count>d<sides>")
		}
		count, sides, err := parseDiceSpec(params[0])
		if err != nil {
			return err
		}
		total := eng.Dice(tier, sides, count)
		if total == 0 {
			return fmt.Errorf("invalid dice spec %q", params[0])
		}
		fmt.Fprintln(out, total)
		return nil

	case "range":
		if len(params) != 2 {
			return fmt.Errorf("usage: range <min> <max>")
		}
		min, err := strconv.ParseInt(params[0], 10, 32)
		if err != nil {
			return fmt.Errorf("parse min: %w", err)
		}
		max, err := strconv.ParseInt(params[1], 10, 32)
		if err != nil {
			return fmt.Errorf("parse max: %w", err)
		}
		fmt.Fprintln(out, eng.Range(tier, int32(min), int32(max)))
		return nil

	case "format":
		if len(params) != 1 {
			return fmt.Errorf("usage: format <pattern>")
		}
		s, err := eng.Format(tier, params[0], len(params[0])+1)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil

	case "shuffle":
		if len(params) < 2 {
			return fmt.Errorf("usage: shuffle <item> <item> [item...]")
		}
		items := append([]string(nil), params...)
		if err := engine.ShuffleSlice(eng, tier, items); err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(items, " "))
		return nil

	case "bytes":
		n, err := intParam(params, 0, 16)
		if err != nil {
			return err
		}
		buf, err := eng.Bytes(tier, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%x\n", buf)
		return nil

	case "point":
		return executePoint(out, eng, tier, params)
	}
	return fmt.Errorf("unknown command %q", command)
}

func executePoint(out io.Writer, eng *engine.Engine, tier engine.Tier, params []string) error {
	if len(params) == 0 {
		return fmt.Errorf("usage: point <circle|ring|sphere|surface> [args]")
	}
	shape, rest := params[0], params[1:]
	switch shape {
	case "circle":
		radius, err := floatParam(rest, 0, 1)
		if err != nil {
			return err
		}
		p, err := eng.PointInCircle(tier, engine.Point2{}, radius)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
		return nil

	case "ring":
		inner, err := floatParam(rest, 0, 1)
		if err != nil {
			return err
		}
		outer, err := floatParam(rest, 1, 2)
		if err != nil {
			return err
		}
		p, err := eng.PointInRing(tier, engine.Point2{}, inner, outer)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
		return nil

	case "sphere":
		radius, err := floatParam(rest, 0, 1)
		if err != nil {
			return err
		}
		p, err := eng.PointInSphere(tier, engine.Point3{}, radius)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%g %g %g\n", p.X, p.Y, p.Z)
		return nil

	case "surface":
		radius, err := floatParam(rest, 0, 1)
		if err != nil {
			return err
		}
		p, err := eng.PointOnSphere(tier, engine.Point3{}, radius)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%g %g %g\n", p.X, p.Y, p.Z)
		return nil
	}
	return fmt.Errorf("unknown shape %q", shape)
}

// parseDiceSpec reads the conventional <count>d<sides> notation, "3d6".
func parseDiceSpec(spec string) (count, sides int, err error) {
	countStr, sidesStr, ok := strings.Cut(strings.ToLower(spec), "d")
	if !ok {
		return 0, 0, fmt.Errorf("dice spec %q must look like 3d6", spec)
	}
	if countStr == "" {
		countStr = "1"
	}
	count, err = strconv.Atoi(countStr)
	if err != nil {
		return 0, 0, fmt.Errorf("dice count: %w", err)
	}
	sides, err = strconv.Atoi(sidesStr)
	if err != nil {
		return 0, 0, fmt.Errorf("dice sides: %w", err)
	}
	return count, sides, nil
}

func intParam(params []string, idx, fallback int) (int, error) {
	if len(params) <= idx {
		return fallback, nil
	}
	v, err := strconv.Atoi(params[idx])
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", params[idx], err)
	}
	return v, nil
}

func floatParam(params []string, idx int, fallback float32) (float32, error) {
	if len(params) <= idx {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(params[idx], 32)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", params[idx], err)
	}
	return float32(v), nil
}
