package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultoc-api/internal/clock"
	"consultoc-api/internal/domain/valuations"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewValuation is the input of Valuations.Create.
type NewValuation struct {
	Address        string
	UsableArea     float64
	Rooms          int
	QualityTier    int
	EstimatedValue *float64
	PricingModel   string
	Latitude       *float64
	Longitude      *float64
}

type ListOptions struct {
	NewestFirst bool
}

// Valuations is the append-only valuation store.
type Valuations struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewValuations(db *gorm.DB, clk clock.Clock) *Valuations {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Valuations{db: db, clock: clk}
}

// Create assigns a fresh id, status Pendente and created_at, then inserts
// the row in its own transaction.
func (s *Valuations) Create(ctx context.Context, in NewValuation) (valuations.Valuation, error) {
	if err := valuations.ValidateRecord(in.Address, in.UsableArea); err != nil {
		return valuations.Valuation{}, err
	}

	v := valuations.Valuation{
		ID:             uuid.NewString(),
		Address:        strings.TrimSpace(in.Address),
		UsableArea:     in.UsableArea,
		Rooms:          in.Rooms,
		QualityTier:    in.QualityTier,
		EstimatedValue: in.EstimatedValue,
		PricingModel:   in.PricingModel,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Status:         valuations.StatusPending,
		CreatedAt:      s.clock.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&v).Error
	})
	if err != nil {
		return valuations.Valuation{}, fmt.Errorf("%w: create valuation: %v", ErrStorage, err)
	}
	return v, nil
}

// List returns every valuation, ordered by created_at.
func (s *Valuations) List(ctx context.Context, opts ListOptions) ([]valuations.Valuation, error) {
	order := "created_at ASC, id ASC"
	if opts.NewestFirst {
		order = "created_at DESC, id DESC"
	}

	var out []valuations.Valuation
	if err := s.db.WithContext(ctx).Order(order).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list valuations: %v", ErrStorage, err)
	}
	return out, nil
}

func (s *Valuations) Get(ctx context.Context, id string) (valuations.Valuation, error) {
	var v valuations.Valuation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return valuations.Valuation{}, fmt.Errorf("%w: valuation %s", ErrNotFound, id)
	}
	if err != nil {
		return valuations.Valuation{}, fmt.Errorf("%w: get valuation: %v", ErrStorage, err)
	}
	return v, nil
}
