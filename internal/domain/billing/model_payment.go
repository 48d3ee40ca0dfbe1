package billing

import "time"

// Payment is a confirmed Stripe checkout. StripeSessionID is unique so a
// redelivered webhook cannot create a second row.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StripeSessionID string    `gorm:"uniqueIndex;not null" json:"stripe_session_id"`
	Mode            string    `gorm:"type:varchar(20)" json:"modo"`
	Plan            string    `gorm:"type:varchar(40)" json:"plano"`
	ValuationID     *string   `gorm:"type:varchar(36);index" json:"valuation_id,omitempty"`
	AmountMinor     int64     `json:"valor_centavos"`
	Currency        string    `gorm:"type:varchar(3)" json:"moeda"`
	CustomerEmail   *string   `json:"email,omitempty"`
	Status          string    `gorm:"type:varchar(20)" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
