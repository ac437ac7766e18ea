package animation

import (
	fserrors "github.com/go-drift/framesteps/pkg/errors"
)

// ProgressFactors samples curve once per frame from startFrame to endFrame
// inclusive and returns the eased progress for each frame.
//
// Frame i is sampled at time i/endFrame. For a non-zero startFrame the curve
// is therefore sampled from startFrame/endFrame to 1 rather than from 0 to 1;
// the window is shifted, not rescaled.
func ProgressFactors(startFrame, endFrame int, curve BezierCurve) ([]float64, error) {
	const op = "animation.ProgressFactors"
	if endFrame <= 0 || startFrame < 0 || startFrame > endFrame {
		return nil, fserrors.Validationf(op, ErrInvalidFrameRange, "start=%d end=%d", startFrame, endFrame)
	}

	factors := make([]float64, 0, endFrame-startFrame+1)
	last := float64(endFrame)
	for i := startFrame; i <= endFrame; i++ {
		f, err := Solve(float64(i)/last, curve)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	return factors, nil
}
