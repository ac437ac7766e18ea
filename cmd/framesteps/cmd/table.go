package cmd

import (
	"context"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/framesteps/pkg/animation"
	"github.com/go-drift/framesteps/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "table",
		Short: "Print the step tables of a sheet",
		Long: `Load an animation sheet, precompute every animation and print its step
table, one row per frame. Colour rows also show the hex swatch.`,
		Usage: "framesteps table <sheet.yaml>",
		Run:   runTable,
	})
}

func runTable(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("sheet path is required\n\nUsage: framesteps table <sheet.yaml>")
	}
	sheet, anims, err := loadSheet(args[0])
	if err != nil {
		return err
	}

	for i, a := range anims {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "%s: %s %s.%s  %s  frames %d-%d",
			sheet.Animations[i].Label(), a.Kind(), a.Object(), a.Property(), a.Curve(), a.StartFrame(), a.EndFrame())
		if a.Loop() != animation.LoopNone {
			fmt.Fprintf(stdout, "  loop %s", a.Loop())
			if a.MaxLoops() > 0 {
				fmt.Fprintf(stdout, " x%d", a.MaxLoops())
			}
		}
		fmt.Fprintln(stdout)
		for frame, step := range a.Steps() {
			fmt.Fprintf(stdout, "  %4d  %s", a.StartFrame()+frame, step)
			if a.Kind() == animation.Color {
				fmt.Fprintf(stdout, "  %s", swatch(step))
			}
			fmt.Fprintln(stdout)
		}
	}
	return nil
}

func loadSheet(path string) (*config.Sheet, []*animation.Animation, error) {
	sheet, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	anims, err := config.Build(context.Background(), sheet)
	if err != nil {
		return nil, nil, err
	}
	return sheet, anims, nil
}

// swatch renders the RGB channels of a colour value as #rrggbb.
func swatch(v animation.Value) string {
	c := colorful.Color{
		R: v.Component(0) / 255,
		G: v.Component(1) / 255,
		B: v.Component(2) / 255,
	}
	return c.Hex()
}
