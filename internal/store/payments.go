package store

import (
	"context"
	"fmt"

	"consultoc-api/internal/clock"
	"consultoc-api/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payments is the ledger of confirmed checkouts.
type Payments struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewPayments(db *gorm.DB, clk clock.Clock) *Payments {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Payments{db: db, clock: clk}
}

// Record inserts p unless its Stripe session is already known. created is
// false for a duplicate delivery.
func (s *Payments) Record(ctx context.Context, p billing.Payment) (created bool, err error) {
	p.ID = 0
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.clock.Now()
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).Create(&p)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: record payment: %v", ErrStorage, err)
	}
	return created, nil
}

// List returns the ledger newest first.
func (s *Payments) List(ctx context.Context) ([]billing.Payment, error) {
	var out []billing.Payment
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list payments: %v", ErrStorage, err)
	}
	return out, nil
}
