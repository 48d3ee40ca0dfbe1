package estimator

import "fmt"

const (
	ModelRegression = "regression"
	ModelLinear     = "linear"
)

// New builds the pricing policy named by model. An empty name selects the
// regression.
func New(model string, unitPricePerSqm float64) (Estimator, error) {
	switch model {
	case ModelLinear:
		return NewLinear(unitPricePerSqm)
	case ModelRegression, "":
		return NewDefaultRegression()
	default:
		return nil, fmt.Errorf("unknown pricing model %q", model)
	}
}
