package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/framesteps/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "curves",
		Short: "List preset easing curves",
		Long: `List the preset easing curves with their control points and the
progress each reaches at a quarter, half and three quarters of the way.`,
		Usage: "framesteps curves",
		Run:   runCurves,
	})
}

func runCurves(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("curves takes no arguments")
	}
	for _, p := range animation.Presets() {
		samples, err := animation.ProgressFactors(0, 4, p.Curve)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %-12s [%s, %s, %s, %s]  %.2f %.2f %.2f\n",
			p.Name, fmtFloat(p.Curve.X1), fmtFloat(p.Curve.Y1), fmtFloat(p.Curve.X2), fmtFloat(p.Curve.Y2),
			samples[1], samples[2], samples[3])
	}
	return nil
}

// parseCurve accepts a preset name or four comma-separated control points.
func parseCurve(s string) (animation.BezierCurve, error) {
	if !strings.Contains(s, ",") {
		return animation.CurveByName(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return animation.BezierCurve{}, fmt.Errorf("curve %q: want x1,y1,x2,y2", s)
	}
	var p [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return animation.BezierCurve{}, fmt.Errorf("curve %q: %w", s, err)
		}
		p[i] = v
	}
	return animation.BezierCurve{X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]}, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
