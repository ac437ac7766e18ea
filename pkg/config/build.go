package config

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/framesteps/pkg/animation"
	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// Build precomputes every animation of sheet in parallel. The result is in
// sheet order. The first failure cancels the remaining work and is returned;
// a panic while building one animation is returned as a *errors.PanicError.
func Build(ctx context.Context, sheet *Sheet) ([]*animation.Animation, error) {
	return build(ctx, sheet, sheet.Classifier())
}

func build(ctx context.Context, sheet *Sheet, classifier animation.Classifier) ([]*animation.Animation, error) {
	defs, err := sheet.Definitions()
	if err != nil {
		return nil, err
	}

	out := make([]*animation.Animation, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, def := range defs {
		g.Go(func() (err error) {
			defer fserrors.RecoverInto("config.Build", &err)
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := animation.New(def, classifier)
			if err != nil {
				return fserrors.New("config.Build", fserrors.KindConfig,
					fmt.Errorf("animation %d (%s): %w", i, sheet.Animations[i].Label(), err))
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
