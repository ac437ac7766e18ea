package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/framesteps/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "solve",
		Short: "Evaluate an easing curve at a time",
		Long: `Evaluate an easing curve: print the progress reached at the given time.

The curve is a preset name (see "framesteps curves") or four comma-separated
control points. Time is a fraction of the animation between 0 and 1.

Flags:
  --allow-below-zero   Extrapolate times below 0
  --allow-above-one    Extrapolate times above 1`,
		Usage: "framesteps solve <curve> <time> [--allow-below-zero] [--allow-above-one]",
		Run:   runSolve,
	})
}

func runSolve(args []string) error {
	var opts []animation.SolveOption
	var positional []string
	for _, arg := range args {
		switch arg {
		case "--allow-below-zero":
			opts = append(opts, animation.AllowBelowZero())
		case "--allow-above-one":
			opts = append(opts, animation.AllowAboveOne())
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) != 2 {
		return fmt.Errorf("curve and time are required\n\nUsage: framesteps solve <curve> <time>")
	}

	curve, err := parseCurve(positional[0])
	if err != nil {
		return err
	}
	time, err := strconv.ParseFloat(positional[1], 64)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", positional[1], err)
	}

	progress, err := animation.Solve(time, curve, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%.6f\n", progress)
	return nil
}
