package estimator

import "errors"

// Linear prices a property as area times a fixed price per square meter.
type Linear struct {
	unitPrice float64
}

func NewLinear(unitPricePerSqm float64) (*Linear, error) {
	if unitPricePerSqm <= 0 {
		return nil, errors.New("unit price per sqm must be positive")
	}
	return &Linear{unitPrice: unitPricePerSqm}, nil
}

func (l *Linear) Name() string { return ModelLinear }

func (l *Linear) Estimate(a Attributes) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return round2(a.Area * l.unitPrice), nil
}
