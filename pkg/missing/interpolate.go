package missing

import (
	"log/slog"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"tablekit/pkg/frame"
)

// minimum observed points per interpolation method.
var minPoints = map[Interpolation]int{
	Linear:    2,
	Quadratic: 3,
	Cubic:     2,
}

// FillByInterpolation estimates missing cells of numeric columns by
// fitting the chosen curve through the surrounding non-missing values in
// row order. Only interior gaps, strictly between the first and last
// observed row, are filled. Columns with too few observed points are
// logged and skipped.
func FillByInterpolation(t *frame.Table, columns []string, method Interpolation) (*frame.Table, error) {
	need, ok := minPoints[method]
	if !ok {
		return nil, frame.NewConfigError("method", "must be linear, quadratic or cubic")
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	for _, c := range subset {
		if !c.Type.IsNumeric() {
			continue
		}
		if !fillable(c) {
			continue
		}
		ys, rows := c.Floats()
		if len(ys) < need {
			slog.Warn("Too few observed values to interpolate",
				slog.String("column", c.Name),
				slog.Int("observed", len(ys)),
				slog.String("method", string(method)))
			continue
		}
		promoteToFloat(c)
		xs := make([]float64, len(rows))
		for i, r := range rows {
			xs[i] = float64(r)
		}

		var predict func(x float64) float64
		switch method {
		case Linear:
			var pl interp.PiecewiseLinear
			if err := pl.Fit(xs, ys); err != nil {
				return nil, err
			}
			predict = pl.Predict
		case Cubic:
			var nc interp.NaturalCubic
			if err := nc.Fit(xs, ys); err != nil {
				return nil, err
			}
			predict = nc.Predict
		case Quadratic:
			predict = func(x float64) float64 {
				return quadraticAt(xs, ys, x)
			}
		}

		first, last := rows[0], rows[len(rows)-1]
		for i := first + 1; i < last; i++ {
			if c.Values[i] == nil {
				c.Values[i] = predict(float64(i))
			}
		}
	}
	return t, nil
}

// quadraticAt evaluates the quadratic through the three observed points
// nearest to x, solving the Vandermonde system for its coefficients.
func quadraticAt(xs, ys []float64, x float64) float64 {
	// Index of the last observed point at or before x.
	k := 0
	for k+1 < len(xs) && xs[k+1] < x {
		k++
	}
	lo := k - 1
	switch {
	case lo < 0:
		lo = 0
	case lo+3 > len(xs):
		lo = len(xs) - 3
	}

	a := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	for i := 0; i < 3; i++ {
		xi := xs[lo+i]
		a.Set(i, 0, 1)
		a.Set(i, 1, xi)
		a.Set(i, 2, xi*xi)
		b.SetVec(i, ys[lo+i])
	}
	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		// Degenerate geometry, fall back to the nearest observation.
		return ys[k]
	}
	return coef.AtVec(0) + coef.AtVec(1)*x + coef.AtVec(2)*x*x
}
