package layout

import "gonum.org/v1/gonum/spatial/r2"

// Padding is the space kept free on each side of the canvas.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// Fit maps points onto a width x height canvas, inside the padding, with y
// pointing down. A zero height is derived from the aspect ratio of the
// points. It returns the canvas coordinates and the final height.
//
// Axes along which all points coincide are centered.
func Fit(points []r2.Vec, width, height float64, pad Padding) ([]r2.Vec, float64) {
	out := make([]r2.Vec, len(points))
	if len(points) == 0 {
		if height == 0 {
			height = pad.Top + pad.Bottom
		}
		return out, height
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r2.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
		hi = r2.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
	}
	span := r2.Sub(hi, lo)

	innerW := max(width-pad.Left-pad.Right, 0)
	var innerH float64
	if height == 0 {
		switch {
		case span.X > 0:
			innerH = innerW * span.Y / span.X
		case span.Y > 0:
			innerH = innerW
		}
		height = innerH + pad.Top + pad.Bottom
	} else {
		innerH = max(height-pad.Top-pad.Bottom, 0)
	}

	for i, p := range points {
		x := pad.Left + innerW/2
		if span.X > 0 {
			x = pad.Left + (p.X-lo.X)/span.X*innerW
		}
		y := pad.Top + innerH/2
		if span.Y > 0 {
			y = pad.Top + (hi.Y-p.Y)/span.Y*innerH
		}
		out[i] = r2.Vec{X: x, Y: y}
	}
	return out, height
}
