package estimator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sample is one historical sale used to fit the regression.
type Sample struct {
	Attributes
	Price float64
}

// TrainingSet is the fixed history the model is fit on at start-up.
var TrainingSet = []Sample{
	{Attributes: Attributes{Area: 50, Rooms: 1, QualityTier: 2}, Price: 260000},
	{Attributes: Attributes{Area: 80, Rooms: 2, QualityTier: 3}, Price: 440000},
	{Attributes: Attributes{Area: 120, Rooms: 3, QualityTier: 3}, Price: 610000},
	{Attributes: Attributes{Area: 200, Rooms: 4, QualityTier: 5}, Price: 1150000},
}

const numFeatures = 3

// Regression is an ordinary least squares model over area, rooms and tier.
type Regression struct {
	intercept float64
	coef      [numFeatures]float64
}

// Fit solves the least squares problem for samples. It needs at least as
// many samples as parameters.
func Fit(samples []Sample) (*Regression, error) {
	n := len(samples)
	if n < numFeatures+1 {
		return nil, fmt.Errorf("need at least %d samples, got %d", numFeatures+1, n)
	}

	x := mat.NewDense(n, numFeatures+1, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		x.Set(i, 0, 1)
		x.Set(i, 1, s.Area)
		x.Set(i, 2, float64(s.Rooms))
		x.Set(i, 3, float64(s.QualityTier))
		y.SetVec(i, s.Price)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("fit regression: %w", err)
		}
		return nil, fmt.Errorf("fit regression: training set is ill-conditioned: %w", err)
	}

	r := &Regression{intercept: beta.AtVec(0)}
	for i := 0; i < numFeatures; i++ {
		r.coef[i] = beta.AtVec(i + 1)
	}
	return r, nil
}

// NewDefaultRegression fits the model on TrainingSet.
func NewDefaultRegression() (*Regression, error) {
	return Fit(TrainingSet)
}

func (r *Regression) Name() string { return ModelRegression }

// Coefficients returns the intercept followed by area, rooms and tier weights.
func (r *Regression) Coefficients() []float64 {
	return []float64{r.intercept, r.coef[0], r.coef[1], r.coef[2]}
}

func (r *Regression) Estimate(a Attributes) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	v := r.intercept +
		r.coef[0]*a.Area +
		r.coef[1]*float64(a.Rooms) +
		r.coef[2]*float64(a.QualityTier)
	if v < 0 {
		return 0, nil
	}
	return round2(v), nil
}
