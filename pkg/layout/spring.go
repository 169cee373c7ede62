package layout

import (
	"context"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphsvg/pkg/matrix"
)

const (
	DefaultSeed       = 42
	DefaultIterations = 50

	minDistance        = 0.01
	initialTemperature = 0.1
)

// SpringOptions configures [Spring].
type SpringOptions struct {
	Seed       uint64
	Iterations int
}

// Spring returns one position per node of the square matrix adj. Edge
// weights scale the attractive force; direction is ignored.
func Spring(adj *matrix.CSR, opts SpringOptions) []r2.Vec {
	pos, _ := SpringContext(context.Background(), adj, opts)
	return pos
}

// SpringContext is [Spring] with cancellation, checked before every
// iteration. It returns ctx.Err() when ctx is done.
func SpringContext(ctx context.Context, adj *matrix.CSR, opts SpringOptions) ([]r2.Vec, error) {
	n, _ := adj.Dims()
	if n == 0 {
		return nil, ctx.Err()
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	pos := make([]r2.Vec, n)
	for i := range pos {
		pos[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}
	if n == 1 {
		return pos, ctx.Err()
	}

	sym := adj.Symmetrize()
	wmax := sym.Max()
	k := math.Sqrt(1 / float64(n))
	temp := initialTemperature
	cool := temp / float64(iterations+1)

	disp := make([]r2.Vec, n)
	for range iterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := r2.Sub(pos[i], pos[j])
				dist := max(r2.Norm(delta), minDistance)
				push := r2.Scale(k*k/(dist*dist), delta)
				disp[i] = r2.Add(disp[i], push)
				disp[j] = r2.Sub(disp[j], push)
			}
		}

		for i := 0; i < n; i++ {
			cols, weights := sym.Row(i)
			for e, j := range cols {
				if j <= i {
					continue
				}
				delta := r2.Sub(pos[i], pos[j])
				dist := max(r2.Norm(delta), minDistance)
				pull := r2.Scale(weights[e]/wmax*dist/k, delta)
				disp[i] = r2.Sub(disp[i], pull)
				disp[j] = r2.Add(disp[j], pull)
			}
		}

		for i := range pos {
			length := r2.Norm(disp[i])
			if length == 0 {
				continue
			}
			pos[i] = r2.Add(pos[i], r2.Scale(min(length, temp)/length, disp[i]))
		}
		temp -= cool
	}
	return pos, nil
}
